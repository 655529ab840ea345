package derive

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/util/command"
	"github/chapool/sol-explorer/internal/wallet"
	"github/chapool/sol-explorer/internal/wallet/keys"
	"github/chapool/sol-explorer/internal/wallet/seed"
)

const (
	countFlag         string = "count"
	schemeFlag        string = "scheme"
	revealFlag        string = "reveal"
	expectAddressFlag string = "expect-address"
	untilPathFlag     string = "until-path"

	// maxCount bounds a single derive run, --until-path included.
	maxCount = 10_000
)

type Flags struct {
	Count         int
	Scheme        string
	Reveal        bool
	ExpectAddress string
	UntilPath     string
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives session accounts from a mnemonic",
		Long: `Reads a mnemonic and an optional passphrase from the terminal (without echo)
or from stdin, one per line, and derives --count accounts starting at index 0.
--until-path derives every account up to and including the one of a BIP-44
path instead, e.g. --until-path "m/44'/501'/4'/0'" derives accounts 0 to 4.

Secret keys are masked unless --reveal is set. Nothing is persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(schemeFlag) {
				cfg, err := command.LoadConfigFromFlags(cmd)
				if err != nil {
					return err
				}
				flags.Scheme = cfg.Wallet.Scheme
			}

			return Run(cmd.Context(), os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().IntVar(&flags.Count, countFlag, 1, "number of accounts to derive")
	cmd.Flags().StringVar(&flags.Scheme, schemeFlag, string(keys.SchemeSolana), "derivation scheme: solana or evm")
	cmd.Flags().BoolVar(&flags.Reveal, revealFlag, false, "print secret keys in clear text")
	cmd.Flags().StringVar(&flags.ExpectAddress, expectAddressFlag, "", "abort unless account 0 derives to this address (detects a mistyped passphrase)")
	cmd.Flags().StringVar(&flags.UntilPath, untilPathFlag, "", "derive up to and including the account of this BIP-44 path")
	cmd.MarkFlagsMutuallyExclusive(countFlag, untilPathFlag)

	return cmd
}

// Run derives the accounts described by flags, reading secrets from in and
// rendering a table to out. Prompts go to prompts.
func Run(ctx context.Context, in *os.File, out io.Writer, prompts io.Writer, flags Flags) error {
	engine, err := keys.NewEngine(keys.Scheme(flags.Scheme))
	if err != nil {
		return err
	}

	count := flags.Count
	if flags.UntilPath != "" {
		account, err := keys.AccountIndexFromPath(flags.UntilPath, engine.Path(0).CoinType)
		if err != nil {
			return err
		}
		count = int(account) + 1
	}
	if count < 1 || count > maxCount {
		return errors.Errorf("count must be between 1 and %d, got %d", maxCount, count)
	}

	prompter := wallet.NewSecretPrompter(in, prompts)

	phrase, err := prompter.Prompt("Mnemonic: ")
	if err != nil {
		return err
	}
	passphrase, err := prompter.Prompt("Passphrase (optional): ")
	if err != nil {
		return err
	}

	seedManager := seed.NewManager()
	defer seedManager.Clear()

	if err := wallet.InitializeSeed(ctx, seedManager, phrase, passphrase); err != nil {
		return err
	}

	if flags.ExpectAddress != "" {
		if err := wallet.VerifyAddress(ctx, seedManager, engine, flags.ExpectAddress); err != nil {
			return err
		}
	}

	service := wallet.NewService(seedManager, engine, nil)
	for i := 0; i < count; i++ {
		if _, err := service.DeriveNext(ctx); err != nil {
			return err
		}
	}

	renderAccounts(out, service.Accounts(), flags.Reveal)

	return nil
}

func renderAccounts(out io.Writer, accounts []*wallet.Account, reveal bool) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Path", "Address", "Secret key"})

	for _, a := range accounts {
		t.AppendRow(table.Row{
			a.Index,
			a.KeyPair.Path,
			a.Address(),
			util.MaskSecret(a.KeyPair.SecretHex(), reveal),
		})
	}

	if !reveal {
		t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("use --%s to show secret keys", revealFlag)})
	}

	t.Render()
}
