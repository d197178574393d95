package main

import (
	"os"

	"github.com/spf13/cobra"

	"lunaspay/internal/interfaces/cli/migrate"
	"lunaspay/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lunaspay",
		Short: "LunasPay - QRIS payment and stablecoin bridge service",
		Long:  `LunasPay decodes QRIS payment codes, settles them through fiat disbursement, and relays stablecoin bridge transfers.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
