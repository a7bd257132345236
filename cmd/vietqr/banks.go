package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/base48/vietqr-portal/internal/vietqr"
)

func newBanksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List known banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BIN\tCODE\tSHORT NAME\tNAME")
			for _, b := range vietqr.Banks() {
				marker := ""
				if b.BIN == cfg.DefaultBankBIN {
					marker = " *"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\n", b.BIN, b.Code, b.ShortName, marker, b.Name)
			}
			return tw.Flush()
		},
	}
}
