package domain

import "errors"

var (
	ErrEmptySubmission   = errors.New("no documents submitted")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractionError   = errors.New("text extraction failed")
	ErrRateLimited       = errors.New("backend rate limited")
	ErrBackendError      = errors.New("backend error")
)
