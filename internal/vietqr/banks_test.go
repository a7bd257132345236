package vietqr

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupBank(t *testing.T) {
	b, ok := LookupBank(DefaultBankBIN)
	assert.True(t, ok)
	assert.Equal(t, "BIDV", b.ShortName)

	_, ok = LookupBank("000000")
	assert.False(t, ok)
}

func TestLookupBankByCode(t *testing.T) {
	tests := []struct {
		code string
		bin  string
	}{
		{"BIDV", "970418"},
		{"vcb", "970436"},
		{"Vietcombank", "970436"},
		{" mb ", "970422"},
		{"techcombank", "970407"},
	}

	for _, tt := range tests {
		b, ok := LookupBankByCode(tt.code)
		if assert.True(t, ok, tt.code) {
			assert.Equal(t, tt.bin, b.BIN, tt.code)
		}
	}
}

func TestResolveBankBIN(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"970418", "970418", true},
		{"acb", "970416", true},
		{"970999", "970999", true},
		{"97041", "", false},
		{"NOPE", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveBankBIN(tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestBanksSortedAndUnique(t *testing.T) {
	list := Banks()
	assert.NotEmpty(t, list)
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool {
		return strings.ToLower(list[i].ShortName) < strings.ToLower(list[j].ShortName)
	}))

	seen := make(map[string]bool)
	for _, b := range list {
		assert.Len(t, b.BIN, 6, b.ShortName)
		assert.False(t, seen[b.BIN], "duplicate BIN %s", b.BIN)
		seen[b.BIN] = true
	}

	// Callers get a copy
	list[0].ShortName = "changed"
	assert.NotEqual(t, "changed", Banks()[0].ShortName)
}
