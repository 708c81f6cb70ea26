package main

import (
	"fmt"
	"strings"

	"github.com/gogpu/ggedit/codec"
	"github.com/gogpu/ggedit/presets"
	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "presets [GROUP]",
		Short:     "List canvas size presets",
		Long:      "List the general canvas presets, or the presets of a platform group (" + strings.Join(presets.GroupNames(), ", ") + ").",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: presets.GroupNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := presets.Catalog()
			if len(args) == 1 {
				g, err := presets.Group(args[0])
				if err != nil {
					return err
				}
				list = g
			}
			for _, p := range list {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range codec.Formats() {
				enc, err := codec.LookupEncoder(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %s\n", name, enc.MIMEType())
			}
			return nil
		},
	}
}
