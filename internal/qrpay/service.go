package qrpay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/base48/vietqr-portal/internal/vietqr"
)

// Style selects one of the rendered presentations.
type Style string

const (
	// StyleLogo is the QR code with the bank logo in the middle.
	StyleLogo Style = "logo"
	// StyleCaptioned adds the account name and id below the code.
	StyleCaptioned Style = "captioned"
	// StylePoster places a rounded code on a decorative background.
	StylePoster Style = "poster"
)

// Styles lists all presentations in display order.
var Styles = []Style{StyleLogo, StyleCaptioned, StylePoster}

// ParseStyle accepts a style name; empty means StyleLogo.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleLogo:
		return StyleLogo, nil
	case StyleCaptioned:
		return StyleCaptioned, nil
	case StylePoster:
		return StylePoster, nil
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// Service provides high-level methods for generating and reading VietQR codes.
type Service struct {
	defaultBIN string
	renderer   *Renderer
	log        *slog.Logger
}

// NewService creates a new QR payment service. defaultBIN is used when a
// request names no bank.
func NewService(defaultBIN string, renderer *Renderer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		defaultBIN: defaultBIN,
		renderer:   renderer,
		log:        log,
	}
}

// GenerateParams holds parameters for generating a payment QR code.
type GenerateParams struct {
	// Account is the beneficiary account number or merchant id.
	Account string
	// Bank is a 6-digit BIN or a bank code such as "BIDV". Empty uses the default.
	Bank string
	// Name is the account holder, only printed on captioned presentations.
	Name string
	// Note is an optional transfer message.
	Note string
	// Amount is an optional amount in dong; separators are accepted.
	Amount string
	// Size overrides the width of the logo presentation. Zero keeps the
	// renderer default.
	Size int
}

// Result is a generated payload together with its rendered images.
type Result struct {
	Payload       string
	Info          vietqr.Info
	Bank          *vietqr.Bank
	AmountDisplay string
	Images        map[Style][]byte
}

// Prepare cleans up user input and resolves the bank, returning the payment
// parameters the payload will be built from.
func (s *Service) Prepare(params GenerateParams) (vietqr.PaymentParams, error) {
	account := strings.TrimSpace(params.Account)
	if account == "" {
		return vietqr.PaymentParams{}, fmt.Errorf("%w: account", vietqr.ErrMissingRequiredField)
	}

	bank := strings.TrimSpace(params.Bank)
	if bank == "" {
		bank = s.defaultBIN
	}
	if bank == "" {
		return vietqr.PaymentParams{}, fmt.Errorf("%w: bank", vietqr.ErrMissingRequiredField)
	}
	bin, ok := vietqr.ResolveBankBIN(bank)
	if !ok {
		return vietqr.PaymentParams{}, fmt.Errorf("%w: %q", vietqr.ErrUnknownBank, bank)
	}

	amount, err := vietqr.SanitizeAmount(params.Amount)
	if err != nil {
		return vietqr.PaymentParams{}, err
	}

	return vietqr.PaymentParams{
		AccountID: account,
		BankBIN:   bin,
		Note:      vietqr.SanitizeNote(params.Note, vietqr.MaxNoteLen),
		Amount:    amount,
	}, nil
}

// GeneratePayload returns just the payload string without images.
// Useful for debugging or alternative display methods.
func (s *Service) GeneratePayload(params GenerateParams) (string, error) {
	p, err := s.Prepare(params)
	if err != nil {
		return "", err
	}
	return vietqr.Build(p)
}

// Generate builds the payload and renders every presentation.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*Result, error) {
	res, err := s.build(params)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	for _, style := range Styles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := s.render(style, res.Payload, name, res.Info.Account, params.Size)
		if err != nil {
			return nil, err
		}
		res.Images[style] = img
	}

	s.log.Info("generated VietQR",
		"bank_bin", res.Info.BankBIN,
		"has_amount", res.Info.Amount != "",
		"payload_len", len(res.Payload),
	)
	return res, nil
}

// Render builds the payload and renders a single presentation.
func (s *Service) Render(ctx context.Context, params GenerateParams, style Style) (*Result, error) {
	res, err := s.build(params)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := s.render(style, res.Payload, strings.TrimSpace(params.Name), res.Info.Account, params.Size)
	if err != nil {
		return nil, err
	}
	res.Images[style] = img
	return res, nil
}

// Decode reads a QR image and extracts the transfer details. With strict set,
// payloads whose checksum does not match are rejected.
func (s *Service) Decode(ctx context.Context, r io.Reader, strict bool) (*vietqr.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	return s.Parse(text, strict)
}

// Parse extracts the transfer details from a raw payload string.
func (s *Service) Parse(payload string, strict bool) (*vietqr.Info, error) {
	payload = strings.TrimSpace(payload)
	if strict {
		if err := vietqr.VerifyChecksum(payload); err != nil {
			return nil, err
		}
	}

	info, err := vietqr.ExtractInfo(payload)
	if err != nil {
		return nil, err
	}
	if !info.Valid {
		s.log.Warn("VietQR checksum mismatch", "checksum", info.Checksum)
	}
	return &info, nil
}

// DefaultBankBIN returns the BIN used when a request names no bank.
func (s *Service) DefaultBankBIN() string {
	return s.defaultBIN
}

// IsConfigured returns true if the service can render images.
func (s *Service) IsConfigured() bool {
	return s.renderer != nil
}

func (s *Service) build(params GenerateParams) (*Result, error) {
	p, err := s.Prepare(params)
	if err != nil {
		return nil, err
	}

	payload, err := vietqr.Build(p)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Payload: payload,
		Info: vietqr.Info{
			Account: p.AccountID,
			BankBIN: p.BankBIN,
			Name:    strings.TrimSpace(params.Name),
			Note:    p.Note,
			Amount:  p.Amount,
			// Checksum is the last 4 characters of a freshly built payload
			Checksum: payload[len(payload)-4:],
			Valid:    true,
		},
		AmountDisplay: vietqr.FormatVND(p.Amount),
		Images:        make(map[Style][]byte, len(Styles)),
	}
	if b, ok := vietqr.LookupBank(p.BankBIN); ok {
		res.Bank = &b
	}
	return res, nil
}

func (s *Service) render(style Style, payload, name, account string, size int) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("renderer not configured")
	}

	switch style {
	case StyleLogo:
		if size > 0 {
			return s.renderer.RenderLogoSize(payload, size)
		}
		return s.renderer.RenderLogo(payload)
	case StyleCaptioned:
		return s.renderer.RenderCaptioned(payload, name, account)
	case StylePoster:
		return s.renderer.RenderPoster(payload, name, account)
	}
	return nil, fmt.Errorf("unknown style %q", style)
}
