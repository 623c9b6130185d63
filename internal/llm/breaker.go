package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	Cooldown         time.Duration
	MaxRequests      uint32
}

// NewCircuitBreaker opens after FailureThreshold consecutive failures and
// lets MaxRequests probes through once Cooldown has passed. Calls the caller
// cancelled itself do not count against the oracle.
func NewCircuitBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[*ChatResponse] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("LLM circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return gobreaker.NewCircuitBreaker[*ChatResponse](settings)
}
