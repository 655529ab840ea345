package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/cmd/account"
	"github/chapool/sol-explorer/cmd/derive"
	"github/chapool/sol-explorer/cmd/mnemonic"
	"github/chapool/sol-explorer/cmd/probe"
	"github/chapool/sol-explorer/cmd/server"
	"github/chapool/sol-explorer/cmd/transaction"
	"github/chapool/sol-explorer/internal/config"
	"github/chapool/sol-explorer/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Derives Solana (and EVM) accounts from a BIP-39 mnemonic for the running
session and looks up balances and transaction history through a list of
fallback RPC endpoints.
Configured through ENV, a .env file or --config.`, config.ModuleName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().String(command.ConfigFlag, "", "optional config file (yaml, toml or json) layered on top of ENV")

	// attach the subcommands
	rootCmd.AddCommand(
		account.New(),
		derive.New(),
		mnemonic.New(),
		probe.New(),
		server.New(),
		transaction.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
