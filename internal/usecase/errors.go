package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 機械可読なエラーメッセージ（ハンドラはそのままJSONで返す）
const (
	msgValidation        = "validation error"
	msgUnauthorized      = "unauthorized"
	msgForbidden         = "forbidden"
	msgNotFound          = "not found"
	msgDBError           = "db error"
	msgEmptyCart         = "cart empty"
	msgNoItemsSelected   = "no items selected"
	msgInsufficientStock = "insufficient stock"
	msgMixedSellers      = "items from multiple sellers"
	msgInvalidTransition = "invalid transition"
	msgAlreadyProcessed  = "already processed"
)
