// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package mail

import "fmt"

// VerifyEmailMessage builds the email-verification message pointing at url.
//
// The link embeds the verification code id; it stays valid for one year, as
// users do not always confirm immediately after signing up.
func VerifyEmailMessage(to, url string) Message {
	return Message{
		To:      to,
		Subject: "Verify your email address",
		Text:    fmt.Sprintf("Click on the link to verify your email address: %s", url),
		HTML: fmt.Sprintf(
			`<!doctype html><html><body>`+
				`<h1>Verify your email address</h1>`+
				`<p>Click on the link below to verify your email address.</p>`+
				`<p><a href="%s">Verify email</a></p>`+
				`</body></html>`, url),
	}
}

// PasswordResetMessage builds the password-reset message pointing at url.
//
// The link embeds the reset code id and its expiry instant; the code itself
// expires one hour after creation.
func PasswordResetMessage(to, url string) Message {
	return Message{
		To:      to,
		Subject: "Password reset request",
		Text:    fmt.Sprintf("Click on the link to reset your password: %s", url),
		HTML: fmt.Sprintf(
			`<!doctype html><html><body>`+
				`<h1>Password reset request</h1>`+
				`<p>Click on the link below to reset your password. The link expires in one hour.</p>`+
				`<p><a href="%s">Reset password</a></p>`+
				`</body></html>`, url),
	}
}
