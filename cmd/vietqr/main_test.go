package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/base48/vietqr-portal/internal/qrpay"
)

const testPayload = "00020101021238540010A00000072701240006970418011001234567890208QRIBFTTA5204000053037045802VN62080804note6304BDE2"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DEFAULT_BANK_BIN", "970418")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGeneratePayloadOnly(t *testing.T) {
	out, err := run(t, "generate", "--account", "0123456789", "--note", "note", "--payload-only")
	require.NoError(t, err)
	assert.Equal(t, testPayload+"\n", out)
}

func TestGenerateWritesImages(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "qr.png")

	stdout, err := run(t, "generate", "-a", "0123456789", "-b", "BIDV", "-n", "note", "--style", "all", "--out", out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stdout, testPayload+"\n"))

	for _, style := range qrpay.Styles {
		data, err := os.ReadFile(filepath.Join(dir, "qr-"+string(style)+".png"))
		require.NoError(t, err, style)
		assert.NotEmpty(t, data)
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := run(t, "generate", "--note", "x")
	assert.Error(t, err, "account is required")

	_, err = run(t, "generate", "-a", "1", "--style", "banner", "--out", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)

	_, err = run(t, "generate", "-a", "1", "-b", "NOPE", "--payload-only")
	assert.Error(t, err)
}

func TestGenerateSizeBounds(t *testing.T) {
	dir := t.TempDir()

	for _, size := range []string{"10", "100000", "-5"} {
		out := filepath.Join(dir, "qr-"+size+".png")
		_, err := run(t, "generate", "-a", "1", "--size="+size, "--out", out)
		assert.ErrorContains(t, err, "--size must be between", size)
		assert.NoFileExists(t, out)
	}

	out := filepath.Join(dir, "qr.png")
	_, err := run(t, "generate", "-a", "1", "--size", "256", "--out", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestDecodeCommand(t *testing.T) {
	data, err := qrpay.GenerateQRPNG(testPayload, 300)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "qr.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := run(t, "decode", path, "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "0123456789")
	assert.Contains(t, out, "BIDV (970418")
	assert.Contains(t, out, "BDE2 OK")

	_, err = run(t, "decode", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", testPayload)
	require.NoError(t, err)

	want := `00 02 Payload format indicator: 01
01 02 Point of initiation method: 12
38 54 Merchant account information
  00 10 GUID: A000000727
  01 24 Beneficiary organization
    00 06 Acquirer BIN: 970418
    01 10 Account number: 0123456789
  02 08 Service code: QRIBFTTA
52 04 Merchant category code: 0000
53 03 Transaction currency: 704
58 02 Country code: VN
62 08 Additional data
  08 04 Purpose of transaction: note
63 04 CRC: BDE2
CRC: OK
`
	assert.Equal(t, want, out)
}

func TestInspectBadChecksum(t *testing.T) {
	out, err := run(t, "inspect", testPayload[:len(testPayload)-4]+"0000")
	require.NoError(t, err)
	assert.Contains(t, out, "CRC: invalid")

	_, err = run(t, "inspect", "0010abc")
	assert.Error(t, err)
}

func TestBanksCommand(t *testing.T) {
	out, err := run(t, "banks")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BIN"))
	assert.Contains(t, out, "BIDV *")
	assert.Contains(t, out, "970436")
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "qr-logo.png", withSuffix("qr.png", "logo"))
	assert.Equal(t, "out/qr-poster.png", withSuffix("out/qr", "poster"))
}
