package vietqr

import "errors"

var (
	// ErrMissingRequiredField is returned when the account id or bank BIN is empty.
	ErrMissingRequiredField = errors.New("vietqr: missing required field")
	// ErrChecksumMismatch is returned when the trailing CRC does not match the payload.
	ErrChecksumMismatch = errors.New("vietqr: checksum mismatch")
	// ErrUnknownBank is returned when a bank is neither a BIN nor a known bank code.
	ErrUnknownBank = errors.New("vietqr: unknown bank")
	// ErrInvalidAmount is returned when an amount is not a positive whole number of dong.
	ErrInvalidAmount = errors.New("vietqr: invalid amount")
)
