package domain

import "errors"

var (
	ErrSessionNotFound     = errors.New("editing session not found")
	ErrSessionLimit        = errors.New("maximum number of editing sessions reached")
	ErrLineOutOfRange      = errors.New("line item index out of range")
	ErrLineLimit           = errors.New("maximum number of line items reached")
	ErrUnknownField        = errors.New("unknown field name")
	ErrImmutableField      = errors.New("field is not editable through this operation")
	ErrInvalidFieldType    = errors.New("value has the wrong type for this field")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrEmailFailed         = errors.New("sending invoice email failed")
)
