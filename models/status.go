package models

import "time"

// TrendDirection classifies the movement between the two most recent
// captured values of a price column.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"

	// TrendNone means fewer than two captured values exist.
	TrendNone TrendDirection = "none"
)

// TrendEpsilon is the half-width of the flat band: deltas with an
// absolute value at or below it are reported as flat.
const TrendEpsilon = 0.009

// PriceColumn names a price column usable in trend queries.
// Column names are never interpolated from raw input.
type PriceColumn string

const (
	PriceColumnMarket PriceColumn = "market_price"
	PriceColumnLow    PriceColumn = "low_price"
	PriceColumnHigh   PriceColumn = "high_price"
)

// KnownPriceColumn reports whether column is one of the queryable
// price columns.
func KnownPriceColumn(column PriceColumn) bool {
	switch column {
	case PriceColumnMarket, PriceColumnLow, PriceColumnHigh:
		return true
	}
	return false
}

// PriceTrend is the movement of one price column for one printing,
// derived from the two most recent non-null captures.
type PriceTrend struct {
	PrintingID string      `json:"printingId"`
	Column     PriceColumn `json:"column"`

	Current  *float64 `json:"current,omitempty"`
	Previous *float64 `json:"previous,omitempty"`
	Delta    *float64 `json:"delta,omitempty"`

	Direction TrendDirection `json:"direction"`

	// LastCapturedAt is the capture timestamp of the newest value.
	LastCapturedAt string `json:"lastCapturedAt,omitempty"`
}

// ClientSyncStatus is the advisory snapshot of a client's position
// relative to the published dataset. CanRefreshNow is informational;
// nothing enforces it.
type ClientSyncStatus struct {
	Dataset       string `json:"dataset"`
	LocalVersion  string `json:"localVersion,omitempty"`
	LatestVersion string `json:"latestVersion,omitempty"`

	NeedsSync     bool   `json:"needsSync"`
	CanRefreshNow bool   `json:"canRefreshNow"`
	Reason        string `json:"reason"`

	// NextExpectedPublishAt is when the next dataset publish becomes
	// expected, policy publish time plus unlock lag. Nil when unknown.
	NextExpectedPublishAt *time.Time `json:"nextExpectedPublishAt,omitempty"`
}
