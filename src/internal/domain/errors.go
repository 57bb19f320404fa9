package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindValidation         ErrorKind = "VALIDATION"
	ErrorKindFrozenAccount      ErrorKind = "FROZEN_ACCOUNT"
	ErrorKindDailyLimitExceeded ErrorKind = "DAILY_LIMIT_EXCEEDED"
	ErrorKindNotFound           ErrorKind = "NOT_FOUND"
	ErrorKindDuplicate          ErrorKind = "DUPLICATE"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches a bare sentinel (no message) of the same kind, so
// errors.Is(err, ErrValidation) holds for every validation failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Kind == e.Kind
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

var (
	ErrValidation             = &Error{Kind: ErrorKindValidation}
	ErrFrozenAccount          = &Error{Kind: ErrorKindFrozenAccount}
	ErrDailyLimitExceeded     = &Error{Kind: ErrorKindDailyLimitExceeded}
	ErrRecordNotFound         = &Error{Kind: ErrorKindNotFound}
	ErrDuplicateAccountNumber = &Error{Kind: ErrorKindDuplicate, Message: "Account number already exists"}
)

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewFrozenAccountError(accountNumber string) error {
	return &Error{Kind: ErrorKindFrozenAccount, Message: fmt.Sprintf("Account %s is frozen", accountNumber)}
}

func NewDailyLimitExceededError(format string, args ...any) error {
	return &Error{Kind: ErrorKindDailyLimitExceeded, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &Error{Kind: ErrorKindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first domain error in err's chain, or "" when
// err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
