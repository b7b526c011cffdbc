package ocr

import "errors"

// Kind classifies pipeline failures so transports can map them to responses.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindClassification  Kind = "classification"
	KindExtraction      Kind = "extraction"
	KindExtractionParse Kind = "extraction_parse"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotBusinessCard is returned by Scan when the classifier rejects the image.
var ErrNotBusinessCard = &Error{
	Kind:    KindValidation,
	Message: "❌ This doesn't seem like a business card. Please upload a clear business card photo.",
}

// KindOf reports the kind of err; errors that are not *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
