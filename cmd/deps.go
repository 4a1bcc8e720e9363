package main

import (
	"context"
	"net/http"

	"ordersync/internal/config"
	"ordersync/internal/reconcile"
	"ordersync/pkg/customs"
	"ordersync/pkg/logger"
	"ordersync/pkg/metrics"
	"ordersync/pkg/pacing"
	"ordersync/pkg/shipstation"
	"ordersync/pkg/shopify"
	"ordersync/pkg/tariff"

	"go.uber.org/zap"
)

var (
	_ reconcile.OrderSource = (*shipstation.Client)(nil)
	_ reconcile.TagService  = (*shipstation.Client)(nil)
	_ customs.OrderStore    = (*shipstation.Client)(nil)
	_ reconcile.Storefront  = (*shopify.Client)(nil)
)

// clients are the upstream API clients shared by the subcommands.
type clients struct {
	fulfillment *shipstation.Client
	storefront  *shopify.Client
}

func getClients(cfg *config.Config) clients {
	return clients{
		fulfillment: shipstation.New(&http.Client{Timeout: cfg.ShipStation.Timeout}, shipstation.Options{
			BaseURL:   cfg.ShipStation.BaseURL,
			APIKey:    cfg.ShipStation.APIKey,
			APISecret: cfg.ShipStation.APISecret,
		}),
		storefront: shopify.New(&http.Client{Timeout: cfg.Shopify.Timeout}, shopify.Options{
			ShopDomain:  cfg.Shopify.ShopDomain,
			AccessToken: cfg.Shopify.AccessToken,
			APIVersion:  cfg.Shopify.APIVersion,
		}),
	}
}

// getCatalog loads the tariff catalog. Declaring without it would put every
// line under the fallback code, so a failed load is fatal.
func getCatalog(ctx context.Context, cfg *config.Config) *tariff.Catalog {
	catalog := tariff.New()
	if !catalog.LoadFile(cfg.Tariff.CSVPath) {
		logger.Fatal(ctx, "could not load tariff catalog", zap.String("path", cfg.Tariff.CSVPath))
	}
	logger.Info(ctx, "tariff catalog loaded", zap.Int("records", catalog.Len()))

	return catalog
}

// getReconciler builds the reconciliation scanner. It does not need the
// tariff catalog.
func getReconciler(cfg *config.Config, c clients, recorder *metrics.Recorder) reconcile.Reconciler {
	opts := reconcile.NewOptions(cfg)
	opts.Recorder = recorder

	return reconcile.New(c.fulfillment, c.storefront, c.fulfillment, opts)
}

// getDeclarer loads the tariff catalog and builds the customs service.
func getDeclarer(ctx context.Context, cfg *config.Config, c clients, recorder *metrics.Recorder) *customs.Service {
	return customs.NewService(getCatalog(ctx, cfg), c.fulfillment, customs.Options{
		Builder: customs.V1PayloadBuilder{},
		Pacer:   pacing.NewIntervalPacer(cfg.Customs.SubmitInterval),
		Retrier: pacing.Retrier{
			Base:        cfg.Retry.Base,
			MaxAttempts: cfg.Retry.MaxAttempts,
		},
		Recorder: recorder,
	})
}
