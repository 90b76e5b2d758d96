package service

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrUnauthorized   = errors.New("Not authenticated")
	ErrNotFound       = errors.New("Social account not found")
	ErrPostNotFound   = errors.New("Post not found")
	ErrInvalidRequest = errors.New("invalid request")
)

func invalidRequest(msg string) error {
	err := fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
	slog.Info(err.Error())
	return err
}
