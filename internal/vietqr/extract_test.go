package vietqr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/base48/vietqr-portal/internal/tlv"
)

func TestExtractInfoRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		merchantID string
		bankBIN    string
		note       string
		amount     string
	}{
		{"bidv with amount", "0123456789", "970418", "Chuyen tien", "100000"},
		{"no amount", "0123456789", "970418", "note", ""},
		{"no note", "V3CASS1234", "970436", "", "5000"},
		{"alphanumeric merchant", "QR-MERCHANT-77", "970422", "Don hang #42", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildPayload(tt.merchantID, tt.bankBIN, tt.note, tt.amount)
			require.NoError(t, err)

			info, err := ExtractInfo(payload)
			require.NoError(t, err)

			assert.Equal(t, tt.merchantID, info.Account)
			assert.Equal(t, tt.bankBIN, info.BankBIN)
			assert.Equal(t, tt.note, info.Note)
			assert.Equal(t, tt.amount, info.Amount)
			assert.Empty(t, info.Name)
			assert.True(t, info.Valid)
			assert.Len(t, info.Checksum, 4)
		})
	}
}

func TestExtractInfoMissingTags(t *testing.T) {
	// Only format indicator and country, nothing to extract
	info, err := ExtractInfo("0002015802VN")
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)

	// Merchant account without the beneficiary sub-field
	merchant := tlv.MustFormat("00", NapasGUID) + tlv.MustFormat("02", ServiceTransferToAccount)
	info, err = ExtractInfo(tlv.MustFormat(TagMerchantAccount, merchant) + tlv.MustFormat(TagAmount, "700"))
	require.NoError(t, err)
	assert.Empty(t, info.Account)
	assert.Empty(t, info.BankBIN)
	assert.Equal(t, "700", info.Amount)
	assert.False(t, info.Valid)
}

func TestExtractInfoMalformedNested(t *testing.T) {
	// Additional data claims a 9 byte note but holds 2
	payload := tlv.MustFormat(TagAdditionalData, "0809ab") + tlv.MustFormat(TagCountry, "VN")
	info, err := ExtractInfo(payload)
	require.NoError(t, err)
	assert.Empty(t, info.Note)
}

func TestExtractInfoTruncated(t *testing.T) {
	_, err := ExtractInfo("000201" + "3899" + "0010A000000727")
	assert.ErrorIs(t, err, tlv.ErrTruncatedPayload)
}

func TestExtractInfoIgnoresShortTail(t *testing.T) {
	payload, err := BuildPayload("0123456789", "970418", "note", "")
	require.NoError(t, err)

	info, err := ExtractInfo(payload + "63")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", info.Account)
	assert.Equal(t, "note", info.Note)
	assert.False(t, info.Valid)
}

func TestExtractInfoKeepsBadChecksum(t *testing.T) {
	payload, err := BuildPayload("0123456789", "970418", "note", "")
	require.NoError(t, err)
	tampered := payload[:len(payload)-4] + "0000"

	info, err := ExtractInfo(tampered)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", info.Account)
	assert.Equal(t, "0000", info.Checksum)
	assert.False(t, info.Valid)
}

func TestVerifyChecksum(t *testing.T) {
	payload, err := BuildPayload("0123456789", "970418", "note", "100000")
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", payload, false},
		{"lower case hex", payload[:len(payload)-4] + strings.ToLower(payload[len(payload)-4:]), false},
		{"flipped amount digit", strings.Replace(payload, "5406100000", "5406900000", 1), true},
		{"wrong crc", payload[:len(payload)-4] + "FFFF", true},
		{"no crc field", payload[:len(payload)-8], true},
		{"empty", "", true},
		{"trailing junk", payload + "0002", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyChecksum(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrChecksumMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}
