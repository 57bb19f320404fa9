package commons

import "github.com/api-sage/ledger-engine/src/internal/domain"

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// FailureResponse carries the domain error kind so clients can branch on Code
// instead of the message text.
func FailureResponse[T any](message string, err error) Response[T] {
	response := ErrorResponse[T](message, err.Error())
	response.Code = string(domain.KindOf(err))
	return response
}
