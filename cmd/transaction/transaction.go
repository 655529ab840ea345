package transaction

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/util/command"
	"github/chapool/sol-explorer/internal/wallet/balance"
	"github/chapool/sol-explorer/internal/wallet/history"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "transaction <signature>",
		Short: "Resolves a single transaction by signature",
		Long: `Looks up one transaction over the history endpoints.
Status is Unknown when no endpoint could resolve it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := command.LoadConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				return Run(ctx, s.History, cmd.OutOrStdout(), args[0])
			})
		},
	}
}

func Run(ctx context.Context, hist history.Service, out io.Writer, signature string) error {
	summary, err := hist.Resolve(ctx, signature)
	if err != nil {
		return err
	}

	occurredAt := "unknown"
	if summary.OccurredAt != nil {
		occurredAt = summary.OccurredAt.UTC().Format("2006-01-02 15:04:05 MST")
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Transaction")
	t.AppendRows([]table.Row{
		{"Signature", summary.Signature},
		{"Status", summary.Status},
		{"Slot", summary.Slot},
		{"Time", occurredAt},
		{"Fee", balance.FormatSOL(summary.FeeLamports) + " SOL"},
	})
	if summary.ExecutionError != "" {
		t.AppendRow(table.Row{"Error", summary.ExecutionError})
	}
	t.Render()

	if summary.Status == history.StatusUnknown {
		fmt.Fprintln(out, "No endpoint could resolve the transaction, run the command again to retry.")
	}

	return nil
}
