package services

import (
	"context"
	"fmt"

	"covid-dashboard/api/dashboard"
	"covid-dashboard/models"

	"golang.org/x/sync/errgroup"
)

// aggregateTarget is one endpoint of a page's fetch batch and where its
// response goes.
type aggregateTarget struct {
	endpoint string
	dst      *models.RawAggregate
}

// fetchBatch issues every request of a page concurrently and waits for all
// of them. The first failure cancels the rest and fails the whole batch.
func fetchBatch(ctx context.Context, api dashboard.DashboardAPI, targets []aggregateTarget, extra ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		g.Go(func() error {
			raw, err := api.GetAggregate(gctx, t.endpoint)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", t.endpoint, err)
			}
			*t.dst = raw
			return nil
		})
	}
	for _, f := range extra {
		g.Go(func() error { return f(gctx) })
	}
	return g.Wait()
}
