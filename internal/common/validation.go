package common

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

func ValidateEmail(email string) *FieldError {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return &FieldError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

func ValidateUsername(username string) *FieldError {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return &FieldError{Field: "username", Message: "username must be between 3 and 30 characters"}
	}
	if !usernameRegex.MatchString(username) {
		return &FieldError{Field: "username", Message: "username can only contain letters, numbers, and underscores"}
	}
	return nil
}

func ValidatePassword(password string) *FieldError {
	if len(password) < 6 {
		return &FieldError{Field: "password", Message: "password must be at least 6 characters long"}
	}
	if len(password) > 100 {
		return &FieldError{Field: "password", Message: "password is too long"}
	}
	return nil
}

func ValidateName(field, name string) *FieldError {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 1 || utf8.RuneCountInString(name) > 50 {
		return &FieldError{Field: field, Message: field + " must be between 1 and 50 characters"}
	}
	return nil
}

// ValidatePostContent enforces the 1-2000 character bound on post bodies.
func ValidatePostContent(content string) *FieldError {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < 1 || n > 2000 {
		return &FieldError{Field: "content", Message: "content is required and must be less than 2000 characters"}
	}
	return nil
}

// ValidateCommentContent enforces the 1-500 character bound on comments.
func ValidateCommentContent(content string) *FieldError {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < 1 || n > 500 {
		return &FieldError{Field: "content", Message: "comment content is required and must be less than 500 characters"}
	}
	return nil
}
