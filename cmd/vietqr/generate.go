package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/base48/vietqr-portal/internal/config"
	"github.com/base48/vietqr-portal/internal/qrpay"
)

var genOpts struct {
	account     string
	bank        string
	name        string
	note        string
	amount      string
	style       string
	out         string
	size        int
	payloadOnly bool
}

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a VietQR code",
		Long: `Build a VietQR payload and render it as PNG. Use --style all to write every
presentation; file names then get the style as a suffix.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&genOpts.account, "account", "a", "", "Beneficiary account number (required)")
	cmd.Flags().StringVarP(&genOpts.bank, "bank", "b", "", "Bank BIN or code, e.g. 970418 or BIDV; defaults to DEFAULT_BANK_BIN")
	cmd.Flags().StringVar(&genOpts.name, "name", "", "Account holder name printed on captioned styles")
	cmd.Flags().StringVarP(&genOpts.note, "note", "n", "", "Transfer message")
	cmd.Flags().StringVar(&genOpts.amount, "amount", "", "Amount in dong")
	cmd.Flags().StringVarP(&genOpts.style, "style", "s", string(qrpay.StyleLogo), "Presentation: logo, captioned, poster or all")
	cmd.Flags().StringVarP(&genOpts.out, "out", "o", "", "Output PNG path (default: vietqr-<id>.png)")
	cmd.Flags().IntVar(&genOpts.size, "size", 0, "Width of the logo style in pixels; defaults to QR_SIZE")
	cmd.Flags().BoolVar(&genOpts.payloadOnly, "payload-only", false, "Print the payload and skip rendering")
	cmd.MarkFlagRequired("account")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genOpts.size != 0 && (genOpts.size < config.MinQRSize || genOpts.size > config.MaxQRSize) {
		return fmt.Errorf("--size must be between %d and %d, got %d", config.MinQRSize, config.MaxQRSize, genOpts.size)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	params := qrpay.GenerateParams{
		Account: genOpts.account,
		Bank:    genOpts.bank,
		Name:    genOpts.name,
		Note:    genOpts.note,
		Amount:  genOpts.amount,
		Size:    genOpts.size,
	}

	if genOpts.payloadOnly {
		payload, err := svc.GeneratePayload(params)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), payload)
		return nil
	}

	var res *qrpay.Result
	all := strings.EqualFold(genOpts.style, "all")
	if all {
		res, err = svc.Generate(cmd.Context(), params)
	} else {
		var style qrpay.Style
		if style, err = qrpay.ParseStyle(genOpts.style); err != nil {
			return err
		}
		res, err = svc.Render(cmd.Context(), params, style)
	}
	if err != nil {
		return err
	}

	out := genOpts.out
	if out == "" {
		out = fmt.Sprintf("vietqr-%s.png", uuid.NewString()[:8])
	}

	for _, style := range qrpay.Styles {
		img, ok := res.Images[style]
		if !ok {
			continue
		}
		path := out
		if all {
			path = withSuffix(out, string(style))
		}
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Payload)
	return nil
}

// withSuffix turns "qr.png" into "qr-logo.png".
func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".png"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "-" + suffix + ext
}
