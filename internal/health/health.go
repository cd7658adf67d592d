package health

import (
	"context"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Checker probes a single dependency.
type Checker interface {
	// Name identifies the dependency in the readiness report.
	Name() string
	// Check returns nil when the dependency is reachable.
	Check(ctx context.Context) error
}

// CheckResult is the outcome of one Checker.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report aggregates the results of all checkers.
type Report struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Healthy reports whether every check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Run executes checkers sequentially and aggregates their results.
// With no checkers the report is healthy.
func Run(ctx context.Context, checkers []Checker) Report {
	rep := Report{Status: StatusHealthy}
	if len(checkers) == 0 {
		return rep
	}

	rep.Checks = make(map[string]CheckResult, len(checkers))
	for _, c := range checkers {
		if err := c.Check(ctx); err != nil {
			rep.Status = StatusUnhealthy
			rep.Checks[c.Name()] = CheckResult{Status: StatusUnhealthy, Error: err.Error()}
			continue
		}
		rep.Checks[c.Name()] = CheckResult{Status: StatusHealthy}
	}
	return rep
}
