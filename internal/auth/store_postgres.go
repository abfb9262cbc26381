// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averix-dev/averix/internal/platform/apperr"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique-constraint failures.
const uniqueViolation = "23505"

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Initializes timestamps and maps a unique-email violation to a
client-safe Conflict error, closing the check-then-create race window.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, passwordhash, isverified, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
			return apperr.Conflict("Email already in use")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, isverified, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, isverified, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
UpdatePassword updates only the password digest for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
MarkVerified updates the user's status to isverified = true.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	const query = "UPDATE users.account SET isverified = TRUE, updatedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_verified_failed: %w", err)
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (
			id, userid, useragent, expiresat, createdat
		) VALUES ($1, $2, $3, $4, $5)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.UserAgent,
		session.ExpiresAt,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a session by its unique id, without an expiry predicate.

Description: The refresh flow inspects ExpiresAt itself to drive the
sliding-renewal decision, so this lookup returns lapsed rows too.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Session: Hydrated session
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByID(context context.Context, id string) (*Session, error) {
	const query = `
		SELECT id, userid, useragent, expiresat, createdat
		FROM users.session
		WHERE id = $1`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.UserAgent,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session not found")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

/*
UpdateExpiry persists a new absolute expiration instant for the session.

Parameters:
  - context: context.Context
  - sessionID: string
  - expiresAt: time.Time

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) UpdateExpiry(context context.Context, sessionID string, expiresAt time.Time) error {
	const query = "UPDATE users.session SET expiresat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, sessionID, expiresAt)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_update_expiry_failed: %w", err)
	}
	return nil
}

/*
ListActiveByUser returns the user's unexpired sessions, newest first.

Description: The expiresat > NOW() predicate is the read-time expiry
enforcement; lapsed sessions never appear without any sweep.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Session: Unexpired sessions sorted by createdat descending
  - error: Retrieval failures
*/
func (repository *PostgresSessionRepository) ListActiveByUser(context context.Context, userID string) ([]*Session, error) {
	const query = `
		SELECT id, userid, useragent, expiresat, createdat
		FROM users.session
		WHERE userid = $1 AND expiresat > NOW()
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_failed: %w", err)
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		session := &Session{}
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.UserAgent,
			&session.ExpiresAt,
			&session.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_session_repo_scan_failed: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_session_repo_rows_failed: %w", err)
	}

	return sessions, nil
}

/*
Delete removes a session by id. Missing rows are not an error.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresSessionRepository) Delete(context context.Context, sessionID string) error {
	const query = "DELETE FROM users.session WHERE id = $1"
	_, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}
	return nil
}

/*
DeleteByIDAndUser removes one session only if it belongs to the user.

Parameters:
  - context: context.Context
  - sessionID: string
  - userID: string

Returns:
  - error: apperr.NotFound when nothing matched, or persistence failures
*/
func (repository *PostgresSessionRepository) DeleteByIDAndUser(context context.Context, sessionID, userID string) error {
	const query = "DELETE FROM users.session WHERE id = $1 AND userid = $2"

	tag, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_owned_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session not found")
	}

	return nil
}

/*
DeleteAllByUser removes every session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch deletion failures
*/
func (repository *PostgresSessionRepository) DeleteAllByUser(context context.Context, userID string) error {
	const query = "DELETE FROM users.session WHERE userid = $1"
	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_all_failed: %w", err)
	}
	return nil
}

/*
DeleteExpired permanently removes all sessions past their expiration.

Description: Cleanup task to reclaim storage from stale sessions. Expiry
correctness never depends on it, as live queries are already time-bound.

Parameters:
  - context: context.Context

Returns:
  - error: Cleanup failures
*/
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	const query = "DELETE FROM users.session WHERE expiresat <= NOW()"
	_, err := repository.pool.Exec(context, query)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_expired_failed: %w", err)
	}
	return nil
}

// # Verification Code Repository

// PostgresVerificationCodeRepository implements VerificationCodeRepository.
type PostgresVerificationCodeRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationCodeRepository creates a new PostgreSQL implementation of
// VerificationCodeRepository.
func NewVerificationCodeRepository(pool *pgxpool.Pool) *PostgresVerificationCodeRepository {
	return &PostgresVerificationCodeRepository{pool: pool}
}

/*
Create persists a new one-time code into the users.verificationcode table.

Parameters:
  - context: context.Context
  - code: *VerificationCode

Returns:
  - error: Storage failures
*/
func (repository *PostgresVerificationCodeRepository) Create(context context.Context, code *VerificationCode) error {
	const query = `
		INSERT INTO users.verificationcode (
			id, userid, type, expiresat, createdat
		) VALUES ($1, $2, $3, $4, $5)`

	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		code.ID,
		code.UserID,
		string(code.Type),
		code.ExpiresAt,
		code.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_code_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindValid retrieves an unexpired code by id and type.

Description: Wrong-type and lapsed codes fall through the predicate and
surface as NotFound exactly like absent codes, so nothing can be learned
by probing ids.

Parameters:
  - context: context.Context
  - id: string
  - codeType: CodeType

Returns:
  - *VerificationCode: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresVerificationCodeRepository) FindValid(context context.Context, id string, codeType CodeType) (*VerificationCode, error) {
	const query = `
		SELECT id, userid, type, expiresat, createdat
		FROM users.verificationcode
		WHERE id = $1 AND type = $2 AND expiresat > NOW()`

	code := &VerificationCode{}
	err := repository.pool.QueryRow(context, query, id, string(codeType)).Scan(
		&code.ID,
		&code.UserID,
		&code.Type,
		&code.ExpiresAt,
		&code.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Invalid or expired verification code")
		}
		return nil, fmt.Errorf("postgres_code_repo_find_failed: %w", err)
	}

	return code, nil
}

/*
Delete consumes a code after successful use.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresVerificationCodeRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM users.verificationcode WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_code_repo_delete_failed: %w", err)
	}
	return nil
}

/*
CountRecent counts codes of one type created for the user after since.

Parameters:
  - context: context.Context
  - userID: string
  - codeType: CodeType
  - since: time.Time

Returns:
  - int64: Number of matching codes
  - error: Retrieval failures
*/
func (repository *PostgresVerificationCodeRepository) CountRecent(context context.Context, userID string, codeType CodeType, since time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM users.verificationcode
		WHERE userid = $1 AND type = $2 AND createdat > $3`

	var count int64
	err := repository.pool.QueryRow(context, query, userID, string(codeType), since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres_code_repo_count_failed: %w", err)
	}

	return count, nil
}
