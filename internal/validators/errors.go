package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingLatestVersion = errors.New("manifest latestVersion is required")
	ErrNoVersions           = errors.New("manifest versions cannot be empty")
	ErrEmptyVersionEntry    = errors.New("manifest version entry has no version")
	ErrMissingFromVersion   = errors.New("patch fromVersion is required")
	ErrMissingToVersion     = errors.New("patch toVersion is required")
	ErrEmptyPrintingID      = errors.New("record printing id is required")
	ErrInvalidPrice         = errors.New("record market price must be finite and non-negative")
)
