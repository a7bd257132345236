package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/base48/vietqr-portal/internal/vietqr"
)

var strict bool

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Read transfer details from a QR image",
		Long:  `Decode a PNG or JPEG image containing a VietQR code and print the transfer details.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the checksum does not match")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := svc.Decode(cmd.Context(), f, strict)
	if err != nil {
		return err
	}

	return printInfo(cmd.OutOrStdout(), info)
}

func printInfo(w io.Writer, info *vietqr.Info) error {
	bank := info.BankBIN
	if b, ok := vietqr.LookupBank(info.BankBIN); ok {
		bank = fmt.Sprintf("%s (%s, %s)", b.ShortName, b.BIN, b.Name)
	}

	checksum := "OK"
	if !info.Valid {
		checksum = "MISMATCH"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Account:\t%s\n", info.Account)
	fmt.Fprintf(tw, "Bank:\t%s\n", bank)
	fmt.Fprintf(tw, "Note:\t%s\n", info.Note)
	fmt.Fprintf(tw, "Amount:\t%s\n", vietqr.FormatVND(info.Amount))
	fmt.Fprintf(tw, "Checksum:\t%s %s\n", info.Checksum, checksum)
	return tw.Flush()
}
