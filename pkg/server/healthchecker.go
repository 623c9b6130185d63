package server

import (
	"context"
	"sync"
)

type HealthChecker interface {
	Name() string
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct{}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Name() string {
	return "self"
}

func (hc *OkHealthChecker) Healthy(context.Context) bool {
	return true
}

// HealthReport maps each checker name to its status.
type HealthReport struct {
	Healthy bool            `json:"healthy"`
	Checks  map[string]bool `json:"checks"`
}

// CheckAll runs every checker concurrently. The report is healthy only when
// every checker is.
func CheckAll(ctx context.Context, checkers ...HealthChecker) HealthReport {
	report := HealthReport{Healthy: true, Checks: make(map[string]bool, len(checkers))}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, hc := range checkers {
		wg.Add(1)
		go func(hc HealthChecker) {
			defer wg.Done()
			ok := hc.Healthy(ctx)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[hc.Name()] = ok
			if !ok {
				report.Healthy = false
			}
		}(hc)
	}
	wg.Wait()

	return report
}
