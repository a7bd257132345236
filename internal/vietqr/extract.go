package vietqr

import (
	"fmt"
	"strings"

	"github.com/base48/vietqr-portal/internal/tlv"
)

// Info holds the transfer details read back from a VietQR payload.
// Missing fields are left empty.
type Info struct {
	Account string `json:"account"`
	BankBIN string `json:"bank_bin"`
	// Name is never carried in the payload; it is filled in by the caller.
	Name   string `json:"name"`
	Note   string `json:"note"`
	Amount string `json:"amount"`

	// Checksum is the value of the trailing CRC field, if any.
	Checksum string `json:"checksum"`
	// Valid reports whether Checksum matches the rest of the payload.
	Valid bool `json:"valid"`
}

// ExtractInfo reads account, bank, note and amount from a raw payload, such as
// the text decoded from a scanned QR image. A payload with a bad checksum is
// still read; check Info.Valid or call VerifyChecksum to reject it.
//
// An error is returned only when the top-level structure cannot be decoded.
// Malformed nested fields are treated as absent.
func ExtractInfo(payload string) (Info, error) {
	var info Info

	parsed, err := tlv.Parse(payload)
	if err != nil {
		return info, fmt.Errorf("failed to parse payload: %w", err)
	}

	if merchant, ok := parsed[TagMerchantAccount]; ok {
		nested := parseNested(merchant)
		if beneficiary, ok := nested[tagBeneficiary]; ok {
			acc := parseNested(beneficiary)
			info.BankBIN = acc[tagBankBIN]
			info.Account = acc[tagAccount]
		}
	}

	if additional, ok := parsed[TagAdditionalData]; ok {
		info.Note = parseNested(additional)[tagPurpose]
	}

	info.Amount = parsed[TagAmount]
	info.Checksum = parsed[TagCRC]
	info.Valid = VerifyChecksum(payload) == nil

	return info, nil
}

// VerifyChecksum checks that payload ends with a CRC field whose value matches
// the CRC-16/CCITT of everything before it.
func VerifyChecksum(payload string) error {
	fields, err := tlv.ParseFields(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty payload", ErrChecksumMismatch)
	}

	last := fields[len(fields)-1]
	if last.Tag != TagCRC || last.Len() != 4 || !strings.HasSuffix(payload, crcHeader+last.Value) {
		return fmt.Errorf("%w: payload does not end with a CRC field", ErrChecksumMismatch)
	}

	want := CRC16CCITT(payload[:len(payload)-len(last.Value)])
	if !strings.EqualFold(want, last.Value) {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, last.Value, want)
	}

	return nil
}

// parseNested decodes a nested field value, returning an empty map if it is malformed.
func parseNested(value string) map[string]string {
	m, err := tlv.Parse(value)
	if err != nil {
		return map[string]string{}
	}
	return m
}
