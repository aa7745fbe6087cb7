package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cairolint/internal/lsp"
	"cairolint/internal/rules"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Serve diagnostics and fixes over the Language Server Protocol (stdio)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debounce, err := cmd.Flags().GetDuration("debounce")
		if err != nil {
			return fmt.Errorf("failed to get debounce flag: %w", err)
		}
		maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
			Debounce:       debounce,
			Registry:       rules.Registry(),
			MaxDiagnostics: maxDiags,
			Log:            cmd.ErrOrStderr(),
		})
		err = server.Run(ctx)
		switch {
		case err == nil, errors.Is(err, lsp.ErrExit):
			return nil
		case errors.Is(err, lsp.ErrExitWithoutShutdown):
			// по протоколу выход без shutdown завершает процесс с кодом 1
			return errFailed
		}
		return err
	},
}

func init() {
	lspCmd.Flags().Duration("debounce", 0, "delay between the last edit and re-linting (0 = default)")
}
