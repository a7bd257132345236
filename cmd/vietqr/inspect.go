package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/base48/vietqr-portal/internal/tlv"
	"github.com/base48/vietqr-portal/internal/vietqr"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <payload>",
		Short: "Show the fields of a raw payload",
		Long:  `Print every TLV field of a VietQR payload in order, with nested fields indented, and check the CRC.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), strings.TrimSpace(args[0]))
		},
	}
}

func inspect(w io.Writer, payload string) error {
	fields, err := tlv.ParseFields(payload)
	if err != nil {
		return err
	}

	for _, f := range fields {
		writeField(w, []string{f.Tag}, f)
	}

	if err := vietqr.VerifyChecksum(payload); err != nil {
		fmt.Fprintf(w, "CRC: invalid (%v)\n", err)
	} else {
		fmt.Fprintln(w, "CRC: OK")
	}
	return nil
}

func writeField(w io.Writer, path []string, f tlv.Field) {
	indent := strings.Repeat("  ", len(path)-1)
	name := vietqr.FieldName(path...)
	if name == "" {
		name = "Unknown"
	}

	if vietqr.IsTemplate(path...) {
		nested, err := tlv.ParseFields(f.Value)
		if err == nil {
			fmt.Fprintf(w, "%s%s %02d %s\n", indent, f.Tag, f.Len(), name)
			for _, n := range nested {
				writeField(w, append(path[:len(path):len(path)], n.Tag), n)
			}
			return
		}
		name += " (malformed)"
	}

	fmt.Fprintf(w, "%s%s %02d %s: %s\n", indent, f.Tag, f.Len(), name, f.Value)
}
