// Package schema declares the request schemas of the API on top of
// package validation.
package schema

import (
	"regexp"
	"strings"

	v "blog-api/internal/validation"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func emailRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.Email("Invalid email address"),
		v.MaxLen(63, "Email is too long"),
		v.Lower(),
		v.Check(func(s string) bool { return !strings.Contains(s, "+") },
			"no '+'", "We don't support email address that contains '+'"),
	}
}

func usernameRules() []v.Rule {
	return []v.Rule{
		v.Trim(),
		v.MinLen(3, "Username must be at least 3 characters long"),
		v.MaxLen(30, "Username must be at most 30 characters long"),
		v.Matches(usernamePattern, "Username can only contains the following characters: a-z, A-Z, 0-9, _, -"),
		v.Lower(),
	}
}

func passwordRules() []v.Rule {
	return v.Redact(
		v.MinLen(8, "Password must be at least 8 characters long"),
		v.MaxLen(24, "Password must be at most 24 characters long"),
	)
}

// SignupInput is the validated signup body. Name defaults to the username
// when omitted.
type SignupInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// Signup validates POST /auth/signup.
func Signup(raw any) v.Result[SignupInput] {
	f := v.NewFields(raw)
	in := SignupInput{
		Email:    f.String("email", emailRules()...),
		Username: f.String("username", usernameRules()...),
		Password: f.String("password", passwordRules()...),
	}
	confirm := f.String("confirmPassword")
	name := f.OptionalString("name",
		v.Trim(),
		v.NonEmpty("Name must not be empty"),
		v.MaxLen(50, "Name must be at most 50 characters long"),
	)
	f.Check("confirmPassword", in.Password == confirm, "Passwords do not match")

	in.Name = in.Username
	if name != nil {
		in.Name = *name
	}
	return v.Finish(f, in)
}

// LoginInput is the validated login body. Identifier is an email or a
// username, lower-cased.
type LoginInput struct {
	Identifier string
	Password   string
}

// Login validates POST /auth/login.
func Login(raw any) v.Result[LoginInput] {
	f := v.NewFields(raw)
	password := v.Redact(
		v.NonEmpty("Password is required"),
		v.MaxLen(24, "Password must be at most 24 characters long"),
	)
	in := LoginInput{
		Identifier: f.String("identifier", v.Trim(), v.NonEmpty("Email or username is required"), v.Lower()),
		Password:   f.String("password", password...),
	}
	return v.Finish(f, in)
}

// ChangePasswordInput is the validated body of PUT /auth/password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ChangePassword validates PUT /auth/password.
func ChangePassword(raw any) v.Result[ChangePasswordInput] {
	f := v.NewFields(raw)
	in := ChangePasswordInput{
		CurrentPassword: f.String("currentPassword", v.Redact(v.NonEmpty("Current password is required"))...),
		NewPassword:     f.String("newPassword", passwordRules()...),
	}
	confirm := f.String("confirmPassword")
	f.Check("confirmPassword", in.NewPassword == confirm, "Passwords do not match")
	f.Check("newPassword", in.NewPassword != in.CurrentPassword, "New password must differ from the current one")
	return v.Finish(f, in)
}
