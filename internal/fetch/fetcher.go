// Package fetch dispatches the per-category requests of a load cycle on a
// bounded worker pool and joins them into a fixed-order result set.
package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/domain"
	"brubeckscan/internal/observability"
)

// DefaultWorkers is the minimum pool size: one slot per category, so a single
// load cycle never queues behind itself.
const DefaultWorkers = domain.NumCategories

// Fetcher runs endpoint requests concurrently. Each request settles on its
// own: a failing category is captured as a result, never an early return, so
// one bad endpoint cannot cancel its siblings.
type Fetcher struct {
	client  brubeck.Client
	workers int
	logger  zerolog.Logger
}

// Options configures a Fetcher.
type Options struct {
	Client  brubeck.Client
	Workers int // pool size; values below DefaultWorkers are raised to it
	Logger  zerolog.Logger
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	workers := opts.Workers
	if workers < DefaultWorkers {
		workers = DefaultWorkers
	}
	return &Fetcher{
		client:  opts.Client,
		workers: workers,
		logger:  opts.Logger,
	}
}

// FetchAll queries all four categories for the address concurrently and
// returns one settled result per category, indexed in category order
// regardless of completion order. It returns only after every request has
// settled; partial result sets are never observable.
func (f *Fetcher) FetchAll(ctx context.Context, address domain.Address) [domain.NumCategories]domain.FetchResult {
	var results [domain.NumCategories]domain.FetchResult

	var g errgroup.Group
	g.SetLimit(f.workers)

	for _, category := range domain.Categories() {
		category := category // per-iteration copy: required while the go directive is below 1.22
		g.Go(func() error {
			start := time.Now()
			result := f.fetchOne(ctx, category, address)
			observability.RecordFetch(string(category), outcome(result), time.Since(start).Seconds())
			results[category.Index()] = result
			return nil
		})
	}

	// Workers never return errors, so Wait is purely the cycle barrier.
	_ = g.Wait()

	return results
}

// fetchOne performs the single request for one category and captures its
// outcome, success or failure, as a FetchResult.
func (f *Fetcher) fetchOne(ctx context.Context, category domain.Category, address domain.Address) domain.FetchResult {
	result := domain.FetchResult{Category: category}

	var err error
	switch category {
	case domain.CategoryStatus:
		result.Status, err = f.client.NodeStatus(ctx, address)
	case domain.CategoryRewards:
		result.Rewards, err = f.client.Rewards(ctx, address)
	case domain.CategoryPayouts:
		result.Payouts, err = f.client.Payouts(ctx, address)
	case domain.CategoryClaimCodes:
		result.Claims, err = f.client.ClaimCodes(ctx, address)
	}

	if err != nil {
		f.logger.Warn().
			Str("category", string(category)).
			Str("address", address.Short()).
			Err(err).
			Msg("endpoint request failed")
		result.Err = err
	}

	return result
}

// outcome labels a settled result for metrics.
func outcome(result domain.FetchResult) string {
	if !result.Failed() {
		return "success"
	}
	if kind := brubeck.Kind(result.Err); kind != "" {
		return string(kind)
	}
	return "error"
}
