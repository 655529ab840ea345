package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/chapool/sol-explorer/internal/api"
	"github/chapool/sol-explorer/internal/util/command"
	"github/chapool/sol-explorer/internal/wallet/gateway"
)

var ErrNoHealthyEndpoint = errors.New("no healthy endpoint")

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newEndpoints(),
	)
}

func newEndpoints() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "Probes every configured RPC endpoint with getHealth",
		Long: `Calls getHealth on every account and history endpoint in their
configured order. Fails when a category has no healthy endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := command.LoadConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
				return Run(ctx, cmd.OutOrStdout(), s.Gateways.All()...)
			})
		},
	}
}

// Run probes the endpoints of every gateway and renders one table row per endpoint.
func Run(ctx context.Context, out io.Writer, gateways ...*gateway.Gateway) error {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "#", "Endpoint", "Healthy", "Latency", "Detail"})

	var unhealthy []string
	for _, gw := range gateways {
		healthy := false

		for i, h := range gw.Health(ctx) {
			detail := h.Status
			if h.Err != nil {
				detail = h.Err.Error()
			}
			healthy = healthy || h.Healthy

			t.AppendRow(table.Row{gw.Category(), i + 1, h.URL, h.Healthy, h.Latency.Round(time.Millisecond), detail})
		}

		if !healthy {
			unhealthy = append(unhealthy, string(gw.Category()))
		}
	}

	t.Render()

	if len(unhealthy) > 0 {
		return errors.Wrapf(ErrNoHealthyEndpoint, "categories %v", unhealthy)
	}

	fmt.Fprintln(out, "All categories have at least one healthy endpoint.")

	return nil
}
