// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averix-dev/averix/internal/auth"
	"github.com/averix-dev/averix/internal/platform/apperr"
	"github.com/averix-dev/averix/internal/platform/constants"
	"github.com/averix-dev/averix/internal/platform/mail"
	"github.com/averix-dev/averix/internal/platform/sec"
)

// # In-Memory Fakes
//
// The fakes mirror the PostgreSQL repositories' observable behavior: NotFound
// mapping, time-bound validity predicates, ownership-checked deletes.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email already in use")
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.PasswordHash = newHash
		user.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.IsVerified = true
	}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*auth.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id string) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		clone := *session
		return &clone, nil
	}
	return nil, apperr.NotFound("Session not found")
}

func (r *fakeSessionRepo) UpdateExpiry(_ context.Context, sessionID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok {
		session.ExpiresAt = expiresAt
	}
	return nil
}

func (r *fakeSessionRepo) ListActiveByUser(_ context.Context, userID string) ([]*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	active := make([]*auth.Session, 0)
	for _, session := range r.sessions {
		if session.UserID == userID && session.ExpiresAt.After(now) {
			clone := *session
			active = append(active, &clone)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeSessionRepo) DeleteByIDAndUser(_ context.Context, sessionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[sessionID]; ok && session.UserID == userID {
		delete(r.sessions, sessionID)
		return nil
	}
	return apperr.NotFound("Session not found")
}

func (r *fakeSessionRepo) DeleteAllByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*auth.VerificationCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[string]*auth.VerificationCode)}
}

func (r *fakeCodeRepo) Create(_ context.Context, code *auth.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	clone := *code
	r.codes[code.ID] = &clone
	return nil
}

func (r *fakeCodeRepo) FindValid(_ context.Context, id string, codeType auth.CodeType) (*auth.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[id]
	if !ok || code.Type != codeType || !code.ExpiresAt.After(time.Now()) {
		return nil, apperr.NotFound("Invalid or expired verification code")
	}
	clone := *code
	return &clone, nil
}

func (r *fakeCodeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, id)
	return nil
}

func (r *fakeCodeRepo) CountRecent(_ context.Context, userID string, codeType auth.CodeType, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, code := range r.codes {
		if code.UserID == userID && code.Type == codeType && code.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

// fakeMailer records outbound messages and can be forced to fail.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []mail.Message
	err      error
	emptyIDs bool
}

func (m *fakeMailer) Send(_ context.Context, message mail.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, message)
	if m.emptyIDs {
		return "", nil
	}
	return "delivery-id", nil
}

func (m *fakeMailer) lastMessage(t *testing.T) mail.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

// # Test Harness

type harness struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	codes    *fakeCodeRepo
	mailer   *fakeMailer
	codec    *sec.TokenCodec
	service  *auth.Service
}

func newHarness() *harness {
	h := &harness{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		codes:    newFakeCodeRepo(),
		mailer:   &fakeMailer{},
		codec:    sec.NewTokenCodec("test-access", "test-refresh", constants.AuthIssuer, constants.AuthAudience),
	}
	h.service = auth.NewService(h.users, h.sessions, h.codes, h.codec, h.mailer, "https://app.averix.test")
	return h
}

func (h *harness) register(t *testing.T, email string) *auth.User {
	t.Helper()
	user, tokens, err := h.service.Register(context.Background(), email, "hunter2hunter2", "go-test/1.0")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	return user
}

// oneCode returns the single stored code of the given type for the user.
func (h *harness) oneCode(t *testing.T, userID string, codeType auth.CodeType) *auth.VerificationCode {
	t.Helper()
	h.codes.mu.Lock()
	defer h.codes.mu.Unlock()
	var found *auth.VerificationCode
	for _, code := range h.codes.codes {
		if code.UserID == userID && code.Type == codeType {
			require.Nil(t, found, "expected exactly one code")
			found = code
		}
	}
	require.NotNil(t, found)
	return found
}

// # Registration

func TestRegister_OpensVerifiedSession(t *testing.T) {
	h := newHarness()

	user, tokens, err := h.service.Register(context.Background(), "new@averix.test", "hunter2hunter2", "go-test/1.0")
	require.NoError(t, err)
	assert.Equal(t, "new@averix.test", user.Email)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash, "digest must never equal the plain text")

	// Both tokens verify and agree on the session.
	access, err := h.codec.VerifyAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := h.codec.VerifyRefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, access.SessionID, refresh.SessionID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness()
	h.register(t, "dup@averix.test")

	_, _, err := h.service.Register(context.Background(), "dup@averix.test", "anotherpassword", "go-test/1.0")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

func TestRegister_VerificationCodeLifetime(t *testing.T) {
	h := newHarness()
	user := h.register(t, "code@averix.test")

	code := h.oneCode(t, user.ID, auth.CodeEmailVerification)
	assert.WithinDuration(t, time.Now().Add(auth.EmailVerificationTTL), code.ExpiresAt, time.Minute)

	message := h.mailer.lastMessage(t)
	assert.Equal(t, "code@averix.test", message.To)
	assert.Contains(t, message.Text, code.ID)
}

func TestRegister_MailFailureIsNotFatal(t *testing.T) {
	h := newHarness()
	h.mailer.err = errors.New("provider down")

	user, tokens, err := h.service.Register(context.Background(), "offline@averix.test", "hunter2hunter2", "go-test/1.0")
	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotNil(t, tokens)
}

// # Login

func TestLogin_Succeeds(t *testing.T) {
	h := newHarness()
	registered := h.register(t, "login@averix.test")

	user, tokens, err := h.service.Login(context.Background(), "login@averix.test", "hunter2hunter2", "go-test/2.0")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := h.codec.VerifyAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	h := newHarness()
	h.register(t, "known@averix.test")

	_, _, unknownErr := h.service.Login(context.Background(), "unknown@averix.test", "hunter2hunter2", "ua")
	_, _, wrongErr := h.service.Login(context.Background(), "known@averix.test", "wrong-password", "ua")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownAE := apperr.As(unknownErr)
	wrongAE := apperr.As(wrongErr)
	require.NotNil(t, unknownAE)
	require.NotNil(t, wrongAE)

	// Unknown email and wrong password must be byte-identical to the client.
	assert.Equal(t, unknownAE.Code, wrongAE.Code)
	assert.Equal(t, unknownAE.Message, wrongAE.Message)
	assert.Equal(t, "UNAUTHORIZED", wrongAE.Code)
}

// # Logout

func TestLogout_AlwaysSucceeds(t *testing.T) {
	h := newHarness()
	user := h.register(t, "bye@averix.test")

	sessions, err := h.sessions.ListActiveByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	assert.NoError(t, h.service.Logout(context.Background(), sessions[0].ID))
	// Idempotent: the session is already gone.
	assert.NoError(t, h.service.Logout(context.Background(), sessions[0].ID))
	// Anonymous caller.
	assert.NoError(t, h.service.Logout(context.Background(), ""))

	remaining, err := h.sessions.ListActiveByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// # Refresh

// seedSession creates a session with a fixed remaining lifetime and returns
// its signed refresh token.
func seedSession(t *testing.T, h *harness, userID string, remaining time.Duration) (*auth.Session, string) {
	t.Helper()
	session := &auth.Session{
		ID:        "01912d68-783e-7f44-8b2f-1f9c63a0e001",
		UserID:    userID,
		UserAgent: "go-test/1.0",
		ExpiresAt: time.Now().Add(remaining),
	}
	require.NoError(t, h.sessions.Create(context.Background(), session))

	token, err := h.codec.SignRefreshToken(session.ID, constants.RefreshTokenTTL)
	require.NoError(t, err)
	return session, token
}

func TestRefresh_OutsideRenewalWindow(t *testing.T) {
	h := newHarness()
	user := h.register(t, "fresh@averix.test")
	session, token := seedSession(t, h, user.ID, 10*24*time.Hour)

	result, err := h.service.Refresh(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	// No rotation outside the renewal window.
	assert.Empty(t, result.RefreshToken)

	stored, err := h.sessions.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, session.ExpiresAt, stored.ExpiresAt, time.Second)
}

func TestRefresh_InsideRenewalWindow(t *testing.T) {
	h := newHarness()
	user := h.register(t, "renew@averix.test")
	session, token := seedSession(t, h, user.ID, 12*time.Hour)

	result, err := h.service.Refresh(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	// The rotated token still points at the same session.
	claims, err := h.codec.VerifyRefreshToken(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.SessionID)

	// Expiry slid forward to a full session lifetime.
	stored, err := h.sessions.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(auth.SessionTTL), stored.ExpiresAt, time.Minute)
}

func TestRefresh_RevokedSession(t *testing.T) {
	h := newHarness()
	user := h.register(t, "revoked@averix.test")
	session, token := seedSession(t, h, user.ID, 10*24*time.Hour)

	require.NoError(t, h.sessions.Delete(context.Background(), session.ID))

	_, err := h.service.Refresh(context.Background(), token)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestRefresh_ExpiredSession(t *testing.T) {
	h := newHarness()
	user := h.register(t, "expired@averix.test")
	_, token := seedSession(t, h, user.ID, -time.Hour)

	_, err := h.service.Refresh(context.Background(), token)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Session expired", ae.Message)
}

func TestRefresh_GarbageToken(t *testing.T) {
	h := newHarness()

	_, err := h.service.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Invalid refresh token", ae.Message)
}

// # Email Verification

func TestVerifyEmail_ConsumesCode(t *testing.T) {
	h := newHarness()
	user := h.register(t, "verify@averix.test")
	code := h.oneCode(t, user.ID, auth.CodeEmailVerification)

	verified, err := h.service.VerifyEmail(context.Background(), code.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	// Single use: the second attempt must fail.
	_, err = h.service.VerifyEmail(context.Background(), code.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestVerifyEmail_RejectsWrongType(t *testing.T) {
	h := newHarness()
	user := h.register(t, "wrongtype@averix.test")

	resetCode := &auth.VerificationCode{
		ID:        "01912d68-783e-7f44-8b2f-1f9c63a0e002",
		UserID:    user.ID,
		Type:      auth.CodePasswordReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, h.codes.Create(context.Background(), resetCode))

	_, err := h.service.VerifyEmail(context.Background(), resetCode.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestVerifyEmail_RejectsExpiredCode(t *testing.T) {
	h := newHarness()
	user := h.register(t, "stale@averix.test")
	code := h.oneCode(t, user.ID, auth.CodeEmailVerification)

	h.codes.mu.Lock()
	h.codes.codes[code.ID].ExpiresAt = time.Now().Add(-time.Minute)
	h.codes.mu.Unlock()

	_, err := h.service.VerifyEmail(context.Background(), code.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Password Recovery

func TestRequestPasswordReset_SendsCode(t *testing.T) {
	h := newHarness()
	user := h.register(t, "forgot@averix.test")

	require.NoError(t, h.service.RequestPasswordReset(context.Background(), "forgot@averix.test"))

	code := h.oneCode(t, user.ID, auth.CodePasswordReset)
	assert.WithinDuration(t, time.Now().Add(auth.PasswordResetTTL), code.ExpiresAt, time.Minute)

	message := h.mailer.lastMessage(t)
	assert.Contains(t, message.Text, code.ID)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	h := newHarness()

	err := h.service.RequestPasswordReset(context.Background(), "nobody@averix.test")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRequestPasswordReset_RateLimited(t *testing.T) {
	h := newHarness()
	h.register(t, "eager@averix.test")

	require.NoError(t, h.service.RequestPasswordReset(context.Background(), "eager@averix.test"))

	err := h.service.RequestPasswordReset(context.Background(), "eager@averix.test")
	require.Error(t, err)
	assert.Equal(t, "TOO_MANY_REQUESTS", apperr.As(err).Code)
}

func TestRequestPasswordReset_DeliveryFailureSurfaces(t *testing.T) {
	h := newHarness()
	user := h.register(t, "undelivered@averix.test")
	h.mailer.err = errors.New("provider down")

	err := h.service.RequestPasswordReset(context.Background(), "undelivered@averix.test")
	require.Error(t, err)
	assert.Equal(t, "INTERNAL", apperr.As(err).Code)

	// The code was created before the send attempt and stays usable.
	code := h.oneCode(t, user.ID, auth.CodePasswordReset)
	assert.NotNil(t, code)
}

func TestRequestPasswordReset_MissingDeliveryID(t *testing.T) {
	h := newHarness()
	h.register(t, "noid@averix.test")
	h.mailer.emptyIDs = true

	err := h.service.RequestPasswordReset(context.Background(), "noid@averix.test")
	require.Error(t, err)
	assert.Equal(t, "INTERNAL", apperr.As(err).Code)
}

func TestResetPassword_RevokesEverything(t *testing.T) {
	h := newHarness()
	user := h.register(t, "reset@averix.test")

	// A second device.
	_, _, err := h.service.Login(context.Background(), "reset@averix.test", "hunter2hunter2", "phone")
	require.NoError(t, err)

	require.NoError(t, h.service.RequestPasswordReset(context.Background(), "reset@averix.test"))
	code := h.oneCode(t, user.ID, auth.CodePasswordReset)

	require.NoError(t, h.service.ResetPassword(context.Background(), code.ID, "brand-new-password"))

	// All sessions revoked.
	remaining, err := h.sessions.ListActiveByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Old password dead, new one works.
	_, _, err = h.service.Login(context.Background(), "reset@averix.test", "hunter2hunter2", "ua")
	require.Error(t, err)
	_, _, err = h.service.Login(context.Background(), "reset@averix.test", "brand-new-password", "ua")
	assert.NoError(t, err)

	// Code consumed.
	err = h.service.ResetPassword(context.Background(), code.ID, "yet-another-password")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Session Management

func TestListSessions_MarksCurrentNewestFirst(t *testing.T) {
	h := newHarness()
	user := h.register(t, "devices@averix.test")

	// Space the sessions out so the ordering is deterministic.
	older := &auth.Session{
		ID:        "01912d68-783e-7f44-8b2f-1f9c63a0e003",
		UserID:    user.ID,
		UserAgent: "laptop",
		ExpiresAt: time.Now().Add(auth.SessionTTL),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, h.sessions.Create(context.Background(), older))

	newest := &auth.Session{
		ID:        "01912d68-783e-7f44-8b2f-1f9c63a0e004",
		UserID:    user.ID,
		UserAgent: "phone",
		ExpiresAt: time.Now().Add(auth.SessionTTL),
		CreatedAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, h.sessions.Create(context.Background(), newest))

	infos, err := h.service.ListSessions(context.Background(), user.ID, older.ID)
	require.NoError(t, err)
	require.Len(t, infos, 3) // registration session + the two seeded ones

	assert.Equal(t, newest.ID, infos[0].ID)
	for _, info := range infos {
		assert.Equal(t, info.ID == older.ID, info.IsCurrent)
	}
}

func TestListSessions_ExcludesExpired(t *testing.T) {
	h := newHarness()
	user := h.register(t, "lapsed@averix.test")

	expired := &auth.Session{
		ID:        "01912d68-783e-7f44-8b2f-1f9c63a0e005",
		UserID:    user.ID,
		UserAgent: "old-phone",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, h.sessions.Create(context.Background(), expired))

	infos, err := h.service.ListSessions(context.Background(), user.ID, "")
	require.NoError(t, err)
	for _, info := range infos {
		assert.NotEqual(t, expired.ID, info.ID)
	}
}

func TestDeleteSession_OwnershipEnforced(t *testing.T) {
	h := newHarness()
	owner := h.register(t, "owner@averix.test")
	intruder := h.register(t, "intruder@averix.test")

	ownerSessions, err := h.sessions.ListActiveByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerSessions, 1)
	target := ownerSessions[0].ID

	// Another user's id yields NotFound and leaves the session alone.
	err = h.service.DeleteSession(context.Background(), intruder.ID, target)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = h.sessions.FindByID(context.Background(), target)
	assert.NoError(t, err)

	// The owner can revoke it.
	require.NoError(t, h.service.DeleteSession(context.Background(), owner.ID, target))
	_, err = h.sessions.FindByID(context.Background(), target)
	assert.Error(t, err)
}

// # Account Lookup

func TestGetUser(t *testing.T) {
	h := newHarness()
	user := h.register(t, "whoami@averix.test")

	found, err := h.service.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = h.service.GetUser(context.Background(), "01912d68-783e-7f44-8b2f-1f9c63a0e0ff")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
