// Package vietqr builds and reads VietQR payloads, the NAPAS flavour of the
// EMVCo merchant-presented QR code used for interbank transfers in Vietnam.
// See: https://vietqr.net and the NAPAS 247 QR specification.
package vietqr

import (
	"fmt"
	"strings"

	"github.com/base48/vietqr-portal/internal/tlv"
)

// Top-level tags of a VietQR payload, in the order they are emitted.
const (
	TagPayloadFormat    = "00"
	TagInitiationMethod = "01"
	TagMerchantAccount  = "38"
	TagMerchantCategory = "52"
	TagCurrency         = "53"
	TagAmount           = "54"
	TagCountry          = "58"
	TagAdditionalData   = "62"
	TagCRC              = "63"
)

// Tags nested inside the merchant account (38) and additional data (62) fields.
const (
	tagGUID        = "00"
	tagBeneficiary = "01"
	tagService     = "02"
	tagBankBIN     = "00"
	tagAccount     = "01"
	tagPurpose     = "08"
)

// Fixed field values.
const (
	PayloadFormatIndicator = "01"
	// InitiationMultiUse marks a static QR that may be paid more than once.
	InitiationMultiUse = "12"
	// NapasGUID identifies NAPAS as the scheme operator.
	NapasGUID = "A000000727"
	// ServiceTransferToAccount is the "fund transfer to account" service code.
	ServiceTransferToAccount = "QRIBFTTA"
	MerchantCategoryCode     = "0000"
	// CurrencyVND is the ISO 4217 numeric code of the Vietnamese dong.
	CurrencyVND = "704"
	CountryCode = "VN"
)

// Encoded fields that never change between payloads.
var (
	fieldsHeader = tlv.MustFormat(TagPayloadFormat, PayloadFormatIndicator) +
		tlv.MustFormat(TagInitiationMethod, InitiationMultiUse)
	fieldGUID     = tlv.MustFormat(tagGUID, NapasGUID)
	fieldService  = tlv.MustFormat(tagService, ServiceTransferToAccount)
	fieldCategory = tlv.MustFormat(TagMerchantCategory, MerchantCategoryCode)
	fieldCurrency = tlv.MustFormat(TagCurrency, CurrencyVND)
	fieldCountry  = tlv.MustFormat(TagCountry, CountryCode)
)

// crcHeader is the tag and fixed length of the checksum field. The checksum is
// computed over the payload including this header.
const crcHeader = TagCRC + "04"

// PaymentParams holds the parameters for generating a VietQR payload.
type PaymentParams struct {
	// AccountID is the beneficiary account or merchant id (required).
	AccountID string
	// BankBIN is the 6-digit NAPAS bank identification number (required).
	BankBIN string
	// Note is the transfer message shown to the payer (optional).
	Note string
	// Amount is a whole number of dong without separators. Empty means the
	// payer enters the amount.
	Amount string
}

// BuildPayload creates a VietQR payload string for a transfer to merchantID at
// the bank identified by bankBIN. amount may be empty.
func BuildPayload(merchantID, bankBIN, addInfo, amount string) (string, error) {
	return Build(PaymentParams{
		AccountID: merchantID,
		BankBIN:   bankBIN,
		Note:      addInfo,
		Amount:    amount,
	})
}

// Build creates a VietQR payload from payment parameters. Inputs are used
// verbatim; callers wanting trimming or diacritic folding should use
// SanitizeNote and SanitizeAmount first.
//
// Example output:
//
//	00020101021238540010A00000072701240006970418011001234567890208QRIBFTTA5204000053037045802VN62080804note6304XXXX
func Build(p PaymentParams) (string, error) {
	if p.AccountID == "" {
		return "", fmt.Errorf("%w: account id", ErrMissingRequiredField)
	}
	if p.BankBIN == "" {
		return "", fmt.Errorf("%w: bank BIN", ErrMissingRequiredField)
	}

	// Beneficiary: bank BIN + account id, wrapped in the NAPAS merchant account
	beneficiary, err := tlv.Encode(
		tlv.Field{Tag: tagBankBIN, Value: p.BankBIN},
		tlv.Field{Tag: tagAccount, Value: p.AccountID},
	)
	if err != nil {
		return "", fmt.Errorf("failed to encode beneficiary: %w", err)
	}
	beneficiary, err = tlv.Format(tagBeneficiary, beneficiary)
	if err != nil {
		return "", fmt.Errorf("failed to encode beneficiary: %w", err)
	}
	merchant, err := tlv.Format(TagMerchantAccount, fieldGUID+beneficiary+fieldService)
	if err != nil {
		return "", fmt.Errorf("failed to encode merchant account: %w", err)
	}

	purpose, err := tlv.Format(tagPurpose, p.Note)
	if err != nil {
		return "", fmt.Errorf("failed to encode note: %w", err)
	}
	additional, err := tlv.Format(TagAdditionalData, purpose)
	if err != nil {
		return "", fmt.Errorf("failed to encode additional data: %w", err)
	}

	// Amount (optional)
	amount := ""
	if p.Amount != "" {
		if amount, err = tlv.Format(TagAmount, p.Amount); err != nil {
			return "", fmt.Errorf("failed to encode amount: %w", err)
		}
	}

	// CRC must be the last field and covers everything before it
	var b strings.Builder
	for _, part := range []string{fieldsHeader, merchant, fieldCategory, fieldCurrency, amount, fieldCountry, additional, crcHeader} {
		b.WriteString(part)
	}
	b.WriteString(CRC16CCITT(b.String()))

	return b.String(), nil
}
