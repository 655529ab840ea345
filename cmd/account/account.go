package account

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/util"
	"github/chapool/sol-explorer/internal/util/command"
	"github/chapool/sol-explorer/internal/wallet/account"
	"github/chapool/sol-explorer/internal/wallet/balance"
	"github/chapool/sol-explorer/internal/wallet/gateway"
	"github/chapool/sol-explorer/internal/wallet/history"
	"github/chapool/sol-explorer/internal/wallet/overview"
)

const minBalanceFlag = "min-balance"

var ErrBelowMinBalance = errors.New("balance is below the minimum")

func New() *cobra.Command {
	var minBalance string

	cmd := &cobra.Command{
		Use:   "account <address>",
		Short: "Shows balance, account info and recent transactions of an address",
		Long: `Loads account info and the most recent transactions of an address
concurrently. Account info is retried over all account endpoints, history
degrades to an empty list or Unknown rows when endpoints fail.

With --min-balance the command fails when the balance is below the given
amount of SOL, so it can be used as a funding check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var minLamports uint64
			if minBalance != "" {
				var err error
				minLamports, err = balance.ParseSOL(minBalance)
				if err != nil {
					return errors.Wrapf(err, "invalid --%s", minBalanceFlag)
				}
			}

			cfg, err := command.LoadConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				return Run(ctx, s.Accounts, s.History, cmd.OutOrStdout(), args[0], minLamports)
			})
		},
	}

	cmd.Flags().StringVar(&minBalance, minBalanceFlag, "", "fail unless the balance is at least this many SOL, e.g. 0.5")

	return cmd
}

// Run loads the overview of address and renders it to out. A failed account
// fetch is rendered with a retry hint and returned after the history.
// minLamports of 0 disables the balance check.
func Run(ctx context.Context, accounts account.Service, hist history.Service, out io.Writer, address string, minLamports uint64) error {
	view, err := overview.NewLoader(accounts, hist).Load(ctx, address)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Address: %s\n\n", view.Address)

	if view.SnapshotErr != nil {
		renderAccountError(out, view.SnapshotErr)
	} else {
		renderSnapshot(out, view.Snapshot)
	}

	fmt.Fprintln(out)
	RenderTransactions(out, view.Transactions)

	if view.SnapshotErr != nil {
		return view.SnapshotErr
	}

	if view.Snapshot.Lamports < minLamports {
		return errors.Wrapf(ErrBelowMinBalance, "%s SOL < %s SOL",
			balance.FormatSOL(view.Snapshot.Lamports), balance.FormatSOL(minLamports))
	}

	return nil
}

func renderSnapshot(out io.Writer, s *account.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Account")
	t.AppendRows([]table.Row{
		{"Balance", balance.FormatSOL(s.Lamports) + " SOL"},
		{"Lamports", s.Lamports},
		{"Data size", fmt.Sprintf("%d bytes", s.DataSize)},
		{"Owner", s.Owner},
		{"Executable", s.Executable},
		{"Exists", s.Exists},
		{"Slot", s.Slot},
	})
	t.Render()
}

func renderAccountError(out io.Writer, err error) {
	var exhausted *gateway.RetriesExhaustedError
	if errors.As(err, &exhausted) {
		fmt.Fprintf(out, "Account info unavailable after %d attempts.\n", exhausted.Attempts)
		fmt.Fprintf(out, "Last error: %s\n", exhausted.LastCause())
		fmt.Fprintln(out, "Check your connection and run the command again to retry.")

		return
	}

	fmt.Fprintf(out, "Account info unavailable: %v\n", err)
}

// RenderTransactions prints summaries in the order given, newest first.
func RenderTransactions(out io.Writer, summaries []*history.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No transactions found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Transactions")
	t.AppendHeader(table.Row{"Signature", "Slot", "Time", "Status", "Fee (SOL)"})

	for _, s := range summaries {
		occurredAt := "-"
		if s.OccurredAt != nil {
			occurredAt = s.OccurredAt.UTC().Format("2006-01-02 15:04:05")
		}

		t.AppendRow(table.Row{
			util.ShortenMiddle(s.Signature, 8),
			s.Slot,
			occurredAt,
			s.Status,
			balance.FormatSOL(s.FeeLamports),
		})
	}

	t.Render()
}
