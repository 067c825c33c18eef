package domain

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoVINsFound    = errors.New("no valid VINs found")
	ErrInvalidVIN     = errors.New("invalid VIN")
	ErrDuplicateVIN   = errors.New("vehicle with this VIN already exists")
	ErrEmptyBatch     = errors.New("no records to commit")
	ErrDocumentEmpty  = errors.New("document text is empty")
	ErrDocumentLarge  = errors.New("document exceeds maximum allowed size")
	ErrUnsupportedDoc = errors.New("unsupported document type")
	ErrUploadFailed   = errors.New("document upload to storage failed")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)
