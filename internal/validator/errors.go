package validator

import "errors"

// Slug errors.
var (
	ErrEmptySlug  = errors.New("slug is empty")
	ErrUnsafeSlug = errors.New("slug cannot be used as a file name")
)
