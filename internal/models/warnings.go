package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = accounts, W2xxx = exchange rates, W3xxx = allocation.
type WarningCode string

const (
	WarnZeroValueAccount WarningCode = "W1001" // account with zero balance left out of the allocation
	WarnFallbackFXRate   WarningCode = "W2001" // no rate fetched yet, fixed fallback multiplier used
	WarnStaleFXRate      WarningCode = "W2002" // cached rate older than its TTL
	WarnAllocationDrift  WarningCode = "W3001" // rounded percentages do not sum to exactly 100
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
