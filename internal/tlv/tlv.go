// Package tlv implements the text Tag-Length-Value encoding used by EMVCo
// merchant-presented QR payloads.
//
// Every field is a 2-digit tag, a 2-digit decimal length and the value itself:
//
//	5406100000  ->  tag "54", length 06, value "100000"
//
// Lengths count bytes, not runes. For the ASCII values found in real payloads
// the two are the same.
package tlv

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TagLen is the number of characters in a tag.
	TagLen = 2
	// LenLen is the number of characters in the length field.
	LenLen = 2
	// HeaderLen is the size of a tag plus its length field.
	HeaderLen = TagLen + LenLen
	// MaxValueLen is the largest value the two-digit length field can describe.
	MaxValueLen = 99
)

// Field is a single tag/value pair. The length is derived from Value.
type Field struct {
	Tag   string
	Value string
}

// Len returns the declared length of the field's value.
func (f Field) Len() int {
	return len(f.Value)
}

// String returns the encoded field, or a placeholder if it cannot be encoded.
func (f Field) String() string {
	s, err := Format(f.Tag, f.Value)
	if err != nil {
		return fmt.Sprintf("%s??%s", f.Tag, f.Value)
	}
	return s
}

// Format encodes one field as tag + zero padded length + value.
func Format(tag, value string) (string, error) {
	if !validTag(tag) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if len(value) > MaxValueLen {
		return "", fmt.Errorf("%w: tag %s has %d bytes", ErrValueTooLong, tag, len(value))
	}

	var b strings.Builder
	b.Grow(HeaderLen + len(value))
	b.WriteString(tag)
	if len(value) < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(len(value)))
	b.WriteString(value)
	return b.String(), nil
}

// MustFormat is like Format but panics on error. It is meant for constant fields.
func MustFormat(tag, value string) string {
	s, err := Format(tag, value)
	if err != nil {
		panic(err)
	}
	return s
}

// Encode formats the fields in order and concatenates them.
func Encode(fields ...Field) (string, error) {
	var b strings.Builder
	for _, f := range fields {
		s, err := Format(f.Tag, f.Value)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// ParseFields decodes a flat sequence of fields, keeping their order and any
// duplicate tags. Decoding stops once fewer than HeaderLen bytes remain; such a
// tail is ignored. Values are returned verbatim and are not checked for nested
// structure.
func ParseFields(payload string) ([]Field, error) {
	var fields []Field

	offset := 0
	for len(payload)-offset >= HeaderLen {
		tag := payload[offset : offset+TagLen]
		lengthStr := payload[offset+TagLen : offset+HeaderLen]

		length, err := parseLength(lengthStr)
		if err != nil {
			return nil, fmt.Errorf("%w: tag %s at offset %d: %q", ErrInvalidLength, tag, offset, lengthStr)
		}
		offset += HeaderLen

		if offset+length > len(payload) {
			return nil, fmt.Errorf("%w: tag %s at offset %d needs %d bytes, got %d",
				ErrTruncatedPayload, tag, offset-HeaderLen, length, len(payload)-offset)
		}

		fields = append(fields, Field{
			Tag:   tag,
			Value: payload[offset : offset+length],
		})
		offset += length
	}

	return fields, nil
}

// Parse decodes a flat sequence of fields into a map keyed by tag. When a tag
// occurs more than once the last value wins.
func Parse(payload string) (map[string]string, error) {
	fields, err := ParseFields(payload)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(fields))
	for _, f := range fields {
		result[f.Tag] = f.Value
	}
	return result, nil
}

func validTag(tag string) bool {
	return len(tag) == TagLen && isDigit(tag[0]) && isDigit(tag[1])
}

// parseLength accepts exactly two decimal digits. strconv.Atoi would also
// take a sign, which is not a valid length.
func parseLength(s string) (int, error) {
	if len(s) != LenLen || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, ErrInvalidLength
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
