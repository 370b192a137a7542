// Package provider runs RPC calls against the configured providers.
//
// Commands that touch more than one endpoint fan the same operation out to
// every provider, collect per-provider results, and keep going when some of
// them fail.
package provider

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmagro/evm-rpc-client/internal/config"
)

// Result wraps one provider's outcome.
type Result[T any] struct {
	ProviderName string
	Index        int
	Value        T
	Err          error
}

// ExecuteAll runs fn concurrently for each provider and returns the results
// in provider order, not completion order.
//
// It never fails fast: every provider is attempted and its error recorded in
// its Result. Cancelling ctx still stops work inside fn.
func ExecuteAll[T any](
	ctx context.Context,
	providers []config.Provider,
	fn func(ctx context.Context, p config.Provider) (T, error),
) []Result[T] {
	results := make([]Result[T], len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			val, err := fn(gctx, p)
			// each goroutine owns results[i]
			results[i] = Result[T]{
				ProviderName: p.Name,
				Index:        i,
				Value:        val,
				Err:          err,
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
