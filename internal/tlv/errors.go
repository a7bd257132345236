package tlv

import "errors"

var (
	// ErrValueTooLong is returned when a value does not fit the two-digit length field.
	ErrValueTooLong = errors.New("tlv: value too long")
	// ErrTruncatedPayload is returned when a declared length runs past the end of the input.
	ErrTruncatedPayload = errors.New("tlv: truncated payload")
	// ErrInvalidTag is returned when a tag is not exactly two ASCII digits.
	ErrInvalidTag = errors.New("tlv: invalid tag")
	// ErrInvalidLength is returned when a length field is not two decimal digits.
	ErrInvalidLength = errors.New("tlv: invalid length")
)
