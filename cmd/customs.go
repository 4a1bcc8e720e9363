package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"ordersync/internal/config"
	"ordersync/pkg/logger"
	"ordersync/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func customsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customs",
		Short: "Builds and submits customs declarations for the given orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			orderIDs, _ := cmd.Flags().GetInt64Slice("order")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			declarer := getDeclarer(ctx, cfg, getClients(cfg), metrics.Nop())
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			if !dryRun {
				return enc.Encode(declarer.DeclareBatch(ctx, orderIDs)) //nolint: wrapcheck
			}

			previews := make(map[int64]any, len(orderIDs))
			for _, id := range orderIDs {
				lines, err := declarer.Preview(ctx, id)
				if err != nil {
					logger.Warn(ctx, "could not preview declaration", zap.Int64("orderID", id), zap.Error(err))
					previews[id] = map[string]string{"error": err.Error()}

					continue
				}
				previews[id] = lines
			}

			return enc.Encode(previews) //nolint: wrapcheck
		},
	}

	cmd.Flags().Int64Slice("order", nil, "Fulfillment order ID, repeatable")
	cmd.Flags().Bool("dry-run", false, "Print the declaration lines without submitting them")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}
