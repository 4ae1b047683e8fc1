package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"herdcl/internal/shell"
)

var rootCmd = &cobra.Command{
	Use:   "herdcl",
	Short: "herdcl: herd content loader",
	Long: `herdcl loads business object definitions and tags described in a content
manifest. Without flags it opens the interactive loader; with --console it runs
the configured action once and logs the result.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var runErr *shell.RunFailedError
		if errors.As(err, &runErr) {
			// Already logged by the shell.
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
