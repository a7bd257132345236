package tlv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		value   string
		want    string
		wantErr error
	}{
		{name: "amount", tag: "54", value: "100000", want: "5406100000"},
		{name: "empty value", tag: "08", value: "", want: "0800"},
		{name: "two digit length", tag: "00", value: "A000000727", want: "0010A000000727"},
		{name: "max length", tag: "62", value: strings.Repeat("x", 99), want: "6299" + strings.Repeat("x", 99)},
		{name: "too long", tag: "62", value: strings.Repeat("x", 100), wantErr: ErrValueTooLong},
		{name: "short tag", tag: "5", value: "1", wantErr: ErrInvalidTag},
		{name: "letter tag", tag: "5A", value: "1", wantErr: ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.tag, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCountsBytes(t *testing.T) {
	got, err := Format("08", "Đ")
	require.NoError(t, err)
	assert.Equal(t, "0802Đ", got)
}

func TestMustFormatPanics(t *testing.T) {
	assert.Panics(t, func() { MustFormat("xx", "1") })
	assert.Equal(t, "5303704", MustFormat("53", "704"))
}

func TestEncode(t *testing.T) {
	got, err := Encode(
		Field{Tag: "00", Value: "970418"},
		Field{Tag: "01", Value: "0123456789"},
	)
	require.NoError(t, err)
	assert.Equal(t, "000697041801100123456789", got)

	_, err = Encode(Field{Tag: "00", Value: "ok"}, Field{Tag: "01", Value: strings.Repeat("9", 120)})
	assert.ErrorIs(t, err, ErrValueTooLong)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    map[string]string
		wantErr error
	}{
		{
			name:    "flat fields",
			payload: "000201010212530370454061000005802VN",
			want:    map[string]string{"00": "01", "01": "12", "53": "704", "54": "100000", "58": "VN"},
		},
		{
			name:    "empty payload",
			payload: "",
			want:    map[string]string{},
		},
		{
			name:    "tail shorter than header is dropped",
			payload: "000201" + "630",
			want:    map[string]string{"00": "01"},
		},
		{
			name:    "one byte tail",
			payload: "0002015802VN" + "6",
			want:    map[string]string{"00": "01", "58": "VN"},
		},
		{
			name:    "bare header with zero length",
			payload: "08000002ab",
			want:    map[string]string{"08": "", "00": "ab"},
		},
		{
			name:    "duplicate tag last wins",
			payload: "0002aa0002bb",
			want:    map[string]string{"00": "bb"},
		},
		{
			name:    "length past end",
			payload: "000201" + "5410123",
			wantErr: ErrTruncatedPayload,
		},
		{
			name:    "non digit length",
			payload: "00x1a",
			wantErr: ErrInvalidLength,
		},
		{
			name:    "signed length rejected",
			payload: "00-1a",
			wantErr: ErrInvalidLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.payload)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFieldsKeepsOrder(t *testing.T) {
	fields, err := ParseFields("5802VN0002010002ff")
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Tag: "58", Value: "VN"},
		{Tag: "00", Value: "01"},
		{Tag: "00", Value: "ff"},
	}, fields)
	assert.Equal(t, 2, fields[0].Len())
	assert.Equal(t, "5802VN", fields[0].String())
}

func TestNestedRoundTrip(t *testing.T) {
	inner, err := Encode(Field{Tag: "00", Value: "970418"}, Field{Tag: "01", Value: "0123456789"})
	require.NoError(t, err)
	outer, err := Encode(Field{Tag: "00", Value: "A000000727"}, Field{Tag: "01", Value: inner})
	require.NoError(t, err)

	top, err := Parse(outer)
	require.NoError(t, err)
	nested, err := Parse(top["01"])
	require.NoError(t, err)

	assert.Equal(t, "A000000727", top["00"])
	assert.Equal(t, "970418", nested["00"])
	assert.Equal(t, "0123456789", nested["01"])
}
