package services

import (
	"context"
	"sync"

	"github.com/epeers/wealthboard/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during a service call chain.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the handler can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	for _, existing := range wc.warnings {
		if existing == w {
			return
		}
	}
	wc.warnings = append(wc.warnings, w)
}

// WarningsFromContext returns the warnings collected in ctx, or nil when
// ctx carries no collector.
func WarningsFromContext(ctx context.Context) []models.Warning {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return nil
	}
	return wc.GetWarnings()
}

// GetWarnings returns a copy of all collected warnings.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return nil
	}
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
