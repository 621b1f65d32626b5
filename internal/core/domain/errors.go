package domain

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrUpload         = errors.New("image upload failed")
	ErrVariantFetch   = errors.New("failed to fetch product variants")
	ErrVariantsLost   = errors.New("variants removed but not reinserted")
	ErrPageOutOfRange = errors.New("page out of range")
)
