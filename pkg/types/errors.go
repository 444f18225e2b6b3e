package types

import "errors"

// Entity errors.
var (
	ErrNotFound        = errors.New("item not found")
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidFilter   = errors.New("invalid category filter")
)

// Codec errors. ErrImportMalformed and ErrImportShapeInvalid reach the
// user; ErrStorageCorrupt is logged and recovered from.
var (
	ErrImportMalformed    = errors.New("import is not valid JSON")
	ErrImportShapeInvalid = errors.New("imported JSON must be an array of items")
	ErrStorageCorrupt     = errors.New("persisted collection is corrupt")
)
