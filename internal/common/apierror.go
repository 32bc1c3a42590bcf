package common

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"socialnet/api"
)

// FieldError is re-exported so validators and handlers share the wire shape.
type FieldError = api.FieldError

// Machine-readable error codes carried alongside the human message.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateEntry   = "DUPLICATE_ENTRY"
	CodeFileTooLarge     = "FILE_TOO_LARGE"
	CodeInvalidFileField = "INVALID_FILE_FIELD"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is the one error type that crosses the handler boundary. Everything
// else gets mapped onto it by Translate.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(fields ...FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

func NewValidationMessage(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

func NewUnauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeInvalidToken, Message: msg}
}

func NewForbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}

func NewNotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func NewDuplicate(msg string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeDuplicateEntry, Message: msg}
}

// IsDuplicate reports whether err is a storage-level unique constraint
// violation. The like/follow toggle paths treat this as "already present"
// rather than a failure.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// duplicateField pulls the offending column out of a MySQL 1062 message so
// the client sees which unique field collided (email vs username).
func duplicateField(err error) string {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return ""
	}
	// message looks like: Duplicate entry 'x' for key 'users.uni_users_email'
	msg := mysqlErr.Message
	i := strings.LastIndex(msg, "for key '")
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len("for key '"):], "'")
	if j := strings.LastIndexAny(key, "._"); j >= 0 {
		key = key[j+1:]
	}
	return key
}

// Translate is the single boundary mapping store-layer and token errors onto
// the API taxonomy. Handlers pass every error through here.
func Translate(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFound("Record not found")
	case IsDuplicate(err):
		field := duplicateField(err)
		if field == "" {
			field = "field"
		}
		return NewDuplicate(field + " already exists")
	case errors.Is(err, jwt.ErrTokenExpired):
		return &Error{Status: http.StatusUnauthorized, Code: CodeTokenExpired, Message: "Token expired"}
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenNotValidYet):
		return &Error{Status: http.StatusUnauthorized, Code: CodeInvalidToken, Message: "Invalid token"}
	}

	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
}
