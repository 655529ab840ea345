package mnemonic

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/util/command"
	"github/chapool/sol-explorer/internal/wallet"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

const (
	wordsFlag string = "words"
)

var ErrInvalidMnemonic = errors.New("mnemonic failed the BIP-39 check")

func New() *cobra.Command {
	return command.NewSubcommandGroup("mnemonic",
		newGenerate(),
		newValidate(),
	)
}

// wordsToBits maps a word count onto BIP-39 entropy bits.
var wordsToBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

func newGenerate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generates a new BIP-39 mnemonic",
		Long: `Generates a new random BIP-39 mnemonic and prints it.
The mnemonic is not stored anywhere, write it down.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, err := cmd.Flags().GetInt(wordsFlag)
			if err != nil {
				return err
			}

			bits, ok := wordsToBits[words]
			if !ok {
				return errors.Errorf("unsupported word count %d, use 12, 15, 18, 21 or 24", words)
			}

			phrase, err := seed.GenerateMnemonic(bits)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), phrase)

			return nil
		},
	}

	cmd.Flags().Int(wordsFlag, 12, "number of words")

	return cmd
}

func newValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Checks a mnemonic against the BIP-39 word list and checksum",
		Long: `Reads a mnemonic from the terminal (without echo) or from stdin and
reports whether it passes the BIP-39 check. Derivation accepts mnemonics
failing this check, so this is informational only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, ok := cmd.InOrStdin().(*os.File)
			if !ok {
				in = os.Stdin
			}
			prompter := wallet.NewSecretPrompter(in, cmd.ErrOrStderr())

			phrase, err := prompter.Prompt("Mnemonic: ")
			if err != nil {
				return err
			}

			if !seed.ValidateMnemonic(phrase) {
				fmt.Fprintln(cmd.OutOrStdout(), "Mnemonic is NOT valid BIP-39.")
				return ErrInvalidMnemonic
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Mnemonic is valid BIP-39.")

			return nil
		},
	}
}
