package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPErrorはhandlerでそのままステータスとメッセージに変換される。
// Messageはクライアントに返す固定文言で、DBのエラー内容は入れない。
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

// 対象が存在しない（404）
func newNotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// 入力が不正（400）
func newInvalid(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 一意制約・参照制約に当たった（400）
func newConflict(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// DBエラーなど（500）
func newPersistence(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}
