package vietqr

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Limits imposed by the two-digit length fields. The merchant account field
// (38) spends 44 bytes on fixed parts and the BIN, additional data (62) spends 4.
const (
	MaxAccountLen = 55
	MaxNoteLen    = 95
	// MaxAmountLen follows the EMVCo limit for the transaction amount.
	MaxAmountLen = 13
)

var (
	thousandsPattern = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)
	amountNoise      = strings.NewReplacer("₫", "", "VND", "", "vnd", "", "Vnd", "", "đ", "", " ", "")
)

// SanitizeNote prepares a transfer note for the payload:
// - Removes Vietnamese diacritics, since many bank apps reject non-ASCII notes
// - Drops any remaining non-printable or non-ASCII characters
// - Collapses whitespace
// - Truncates to maxLen bytes
func SanitizeNote(s string, maxLen int) string {
	s = RemoveDiacritics(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			if unicode.IsSpace(r) {
				return ' '
			}
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimSpace(s[:maxLen])
	}
	return s
}

// RemoveDiacritics converts Vietnamese text to plain ASCII letters.
func RemoveDiacritics(s string) string {
	// đ is a distinct letter, not d with a combining mark
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// SanitizeAmount normalises a user-entered amount to whole dong digits.
// It accepts thousand separators ("100.000", "100,000") and a trailing
// currency marker ("100000 VND", "100.000₫"). An empty input stays empty.
func SanitizeAmount(s string) (string, error) {
	s = amountNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}

	if thousandsPattern.MatchString(s) {
		s = strings.NewReplacer(".", "", ",", "").Replace(s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return "", fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	if !d.Equal(d.Truncate(0)) {
		return "", fmt.Errorf("%w: dong has no minor unit", ErrInvalidAmount)
	}

	out := d.String()
	if len(out) > MaxAmountLen {
		return "", fmt.Errorf("%w: more than %d digits", ErrInvalidAmount, MaxAmountLen)
	}
	return out, nil
}

// FormatVND renders an amount for display, e.g. "100000" as "100.000 ₫".
// Values that are not numbers are returned unchanged.
func FormatVND(amount string) string {
	if amount == "" {
		return ""
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	ac := accounting.DefaultAccounting("₫", 0)
	ac.Thousand = "."
	ac.Format = "%v %s"
	return ac.FormatMoney(d.IntPart())
}
