package controller_test

import (
	"errors"

	apperrors "github.com/vytor/wordcards/internal/errors"
)

func remoteError(status int, msg string) error {
	return apperrors.NewRemoteError(status, msg)
}

func networkError() error {
	return apperrors.NewNetworkError(errors.New("dial tcp: connection refused"))
}
