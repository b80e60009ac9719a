package util

import "errors"

var (
	ErrInvalidPageSize     = errors.New("invalid page size")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrPageNumberMismatch  = errors.New("page number mismatch")
	ErrInvalidInitialPages = errors.New("initial pages must be positive")
	ErrPageOutOfBounds     = errors.New("page out of bounds")
	ErrFileClosed          = errors.New("file manager is closed")
	ErrInvalidPoolSize     = errors.New("invalid pool size")
)
