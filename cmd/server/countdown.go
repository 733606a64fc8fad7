package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cuenta-regresiva/backend/internal/clock"
)

func addCountdownCmd(rootCmd *cobra.Command) {
	var once bool

	countdownCmd := &cobra.Command{
		Use:   "countdown",
		Short: "Print the countdown in the terminal until Ctrl+C",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			p := a.page.Profile()
			fmt.Fprintf(out, "%s\n%s\n\n", p.Heading, p.Subheading)

			if once {
				snap := a.page.Snapshot()
				fmt.Fprintf(out, "%s [%3.0f%%]\n", snap.Text, snap.Timeline.Now*100)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = clock.Every(ctx, a.cfg.RefreshInterval(), func(context.Context) error {
				snap := a.page.Snapshot()
				_, err := fmt.Fprintf(out, "\r\033[K%s [%3.0f%%]", snap.Text, snap.Timeline.Now*100)
				return err
			})
			fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	countdownCmd.Flags().BoolVar(&once, "once", false, "Print a single line and exit")

	rootCmd.AddCommand(countdownCmd)
}
