package main

import (
	"fmt"
	"strings"

	"imgview/internal/codec"

	"github.com/spf13/cobra"
)

func formatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported image formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range codec.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", f.Name, strings.Join(f.Extensions, " "))
			}
			exts := codec.NewExtensionSet(opts.cfg.Listing.ExtraExtensions...).Extensions()
			fmt.Fprintf(cmd.OutOrStdout(), "match order: %s\n", strings.Join(exts, " "))
		},
	}
}
