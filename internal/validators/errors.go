package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyTitle         = errors.New("title is required")
	ErrEmptyCategory      = errors.New("category is required")
	ErrInvalidTag         = errors.New("tags cannot be blank")
	ErrInvalidCustomField = errors.New("invalid custom field")
	ErrEmptyName          = errors.New("name is required")
	ErrIncompleteCipher   = errors.New("encrypted password is incomplete")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrUnsupportedFormat  = errors.New("unsupported snapshot storage format")
	ErrMissingPasswords   = errors.New("snapshot has no passwords list")
	ErrDuplicateID        = errors.New("duplicate id")
)
