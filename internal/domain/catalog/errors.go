package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidImage    = errors.New("unsupported image file")
	ErrImageTooLarge   = errors.New("image exceeds the size limit")
)
