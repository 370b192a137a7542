package provider

import (
	"context"
	"time"

	"github.com/dmagro/evm-rpc-client/internal/config"
	"github.com/dmagro/evm-rpc-client/internal/stats"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// Status is the coarse health of a probed provider.
type Status string

const (
	StatusUp       Status = "UP"
	StatusSlow     Status = "SLOW"
	StatusDegraded Status = "DEGRADED"
	StatusDown     Status = "DOWN"
)

// slowP95 marks a provider SLOW when its p95 latency exceeds it.
const slowP95 = 500 * time.Millisecond

// DefaultSampleInterval spaces eth_blockNumber samples to the same provider.
const DefaultSampleInterval = 50 * time.Millisecond

// Health is the result of probing one provider.
type Health struct {
	Name      string
	URL       string
	ChainID   string // hex, empty when eth_chainId failed
	Samples   int
	Successes int
	Latency   stats.TailLatency
	Height    uint64 // highest head seen
	Lag       uint64 // blocks behind the best head across providers
	Status    Status
	Errors    map[rpc.ErrorType]int
	LastErr   error
}

// SuccessRate returns the share of successful samples as a percentage.
func (h Health) SuccessRate() float64 {
	if h.Samples == 0 {
		return 0
	}
	return float64(h.Successes) / float64(h.Samples) * 100
}

// Probe calls eth_chainId once and then eth_blockNumber samples times,
// interval apart, recording latency for each successful sample.
func Probe(ctx context.Context, client *rpc.Client, samples int, interval time.Duration) Health {
	h := Health{
		Name:   client.Name(),
		URL:    client.URL(),
		Errors: make(map[rpc.ErrorType]int),
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		h.record(err)
	} else {
		h.ChainID = chainID
	}

	latencies := make([]time.Duration, 0, samples)
	for i := 0; i < samples; i++ {
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				h.finish(latencies)
				return h
			case <-time.After(interval):
			}
		}

		start := time.Now()
		height, err := client.BlockNumber(ctx)
		latency := time.Since(start)

		h.Samples++
		if err != nil {
			h.record(err)
			continue
		}
		h.Successes++
		latencies = append(latencies, latency)
		h.Height = max(h.Height, height)
	}

	h.finish(latencies)
	return h
}

func (h *Health) record(err error) {
	h.Errors[rpc.TypeOf(err)]++
	h.LastErr = err
}

func (h *Health) finish(latencies []time.Duration) {
	h.Latency = stats.CalculateTailLatency(latencies)

	rate := h.SuccessRate()
	switch {
	case h.Successes == 0:
		h.Status = StatusDown
	case rate < 90:
		h.Status = StatusDegraded
	case h.Latency.P95 > slowP95:
		h.Status = StatusSlow
	default:
		h.Status = StatusUp
	}
}

// ProbeAll probes every provider concurrently and fills in each one's lag
// behind the best head. Results are in provider order.
func ProbeAll(ctx context.Context, pool *ClientPool, providers []config.Provider, samples int, interval time.Duration) []Health {
	results := ExecuteAll(ctx, providers, func(ctx context.Context, p config.Provider) (Health, error) {
		return Probe(ctx, pool.Get(p), samples, interval), nil
	})

	health := make([]Health, len(results))
	for i, r := range results {
		health[i] = r.Value
	}
	SetLag(health)
	return health
}

// SetLag sets Lag on every reachable provider relative to the highest head.
func SetLag(health []Health) {
	best := BestHeight(health)
	for i := range health {
		if health[i].Successes > 0 {
			health[i].Lag = best - health[i].Height
		}
	}
}

// BestHeight returns the highest head across health.
func BestHeight(health []Health) uint64 {
	var best uint64
	for _, h := range health {
		best = max(best, h.Height)
	}
	return best
}
