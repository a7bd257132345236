package vietqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeNote(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"Chuyển khoản tiền điện tháng 5", MaxNoteLen, "Chuyen khoan tien dien thang 5"},
		{"ĐÓNG HỌC PHÍ", MaxNoteLen, "DONG HOC PHI"},
		{"  Tiền   nhà  ☺ ", MaxNoteLen, "Tien nha"},
		{"tab\tand\nnewline", MaxNoteLen, "tab and newline"},
		{"Thanh toan don hang", 11, "Thanh toan"},
		{"", MaxNoteLen, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeNote(tt.input, tt.maxLen), "SanitizeNote(%q, %d)", tt.input, tt.maxLen)
	}
}

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Nguyễn Văn A", "Nguyen Van A"},
		{"Đỗ Thị Hương", "Do Thi Huong"},
		{"Tên tài khoản:", "Ten tai khoan:"},
		{"Normal text", "Normal text"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoveDiacritics(tt.input))
	}
}

func TestSanitizeAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "100000", want: "100000"},
		{input: " 100000 ", want: "100000"},
		{input: "100.000", want: "100000"},
		{input: "1,250,000", want: "1250000"},
		{input: "100.000₫", want: "100000"},
		{input: "50000 VND", want: "50000"},
		{input: "100000.00", want: "100000"},
		{input: "0", wantErr: true},
		{input: "-500", wantErr: true},
		{input: "100.5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "12345678901234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := SanitizeAmount(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "100.000 ₫", FormatVND("100000"))
	assert.Equal(t, "1.250.000 ₫", FormatVND("1250000"))
	assert.Equal(t, "500 ₫", FormatVND("500"))
	assert.Equal(t, "", FormatVND(""))
	assert.Equal(t, "n/a", FormatVND("n/a"))
}
