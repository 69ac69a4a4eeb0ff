package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrIntegrityCheck is returned when a hub response is missing its
	// HashSHA256 signature or the signature does not match the body.
	ErrIntegrityCheck = errors.New("integrity check failed")

	ErrInvalidAddress = errors.New("invalid hub address")
)
