package vietqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldName(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"00"}, "Payload format indicator"},
		{[]string{"54"}, "Transaction amount"},
		{[]string{"63"}, "CRC"},
		{[]string{"38", "00"}, "GUID"},
		{[]string{"38", "01", "00"}, "Acquirer BIN"},
		{[]string{"38", "01", "01"}, "Account number"},
		{[]string{"62", "08"}, "Purpose of transaction"},
		{[]string{"62", "05"}, ""},
		{[]string{"99"}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FieldName(tt.path...), tt.path)
	}
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, IsTemplate("38"))
	assert.True(t, IsTemplate("38", "01"))
	assert.True(t, IsTemplate("62"))
	assert.False(t, IsTemplate("38", "00"))
	assert.False(t, IsTemplate("54"))
	assert.False(t, IsTemplate())
}
