package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MV-Clouds/quickform-payments/internal/interfaces/cli/migrate"
	"github.com/MV-Clouds/quickform-payments/internal/interfaces/cli/server"
	"github.com/MV-Clouds/quickform-payments/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quickformpay",
		Short: "QuickForm payments service",
		Long:  `QuickForm payments service - reconciles form payment fields with the payment provider and serves the payments API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}
