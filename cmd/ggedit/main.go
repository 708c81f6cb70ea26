// Command ggedit composes images from a JSON script with the ggedit editor.
//
// Usage:
//
//	ggedit compose poster.json -o poster.png
//	ggedit compose poster.json --format jpeg --pick-preset
//	ggedit presets facebook
//	ggedit formats
//
// Background removal uses the remove.bg compatible service configured by
// the GGEDIT_REMOVEBG_KEY and GGEDIT_REMOVEBG_URL environment variables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/ggedit"
	"github.com/spf13/cobra"
)

// Environment variables read by the command.
const (
	envRemoveBgKey = "GGEDIT_REMOVEBG_KEY"
	envRemoveBgURL = "GGEDIT_REMOVEBG_URL"
)

var verbose int

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ggedit",
		Short:         "Compose images from layers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log progress (-vv for debug)")
	root.AddCommand(newComposeCmd(), newPresetsCmd(), newFormatsCmd())
	return root
}

func setupLogging(level int) {
	if level == 0 {
		ggedit.SetLogger(nil)
		return
	}
	l := slog.LevelInfo
	if level > 1 {
		l = slog.LevelDebug
	}
	ggedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ggedit:", err)
		os.Exit(1)
	}
}
