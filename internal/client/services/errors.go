package services

import "errors"

var (
	ErrWeakMasterPassword = errors.New("master password is too weak")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrInvalidExport      = errors.New("export document is invalid")
)
