// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Catalog-sourced rows are currently published for a single
// condition/finish combination. The keys are kept in the storage
// schema so graded or foil price feeds can join the same tables later.
const (
	CatalogCondition = "NM"
	CatalogFinish    = "nonfoil"
)

// Record is one card printing's price row as published in snapshots
// and patches. PrintingID is the stable identity; everything else is
// the payload captured at CapturedAt.
type Record struct {
	// PrintingID uniquely identifies a physical printing of a card.
	PrintingID string `json:"printingId"`

	// Name is the card display name.
	Name string `json:"name"`

	// SetCode is the lowercase set abbreviation, e.g. "neo".
	SetCode string `json:"setCode"`

	// CollectorNumber is the printing's number inside the set.
	CollectorNumber string `json:"collectorNumber"`

	// ImageURL points at the card face image. Optional.
	ImageURL *string `json:"imageUrl,omitempty"`

	// MarketPrice is the current market price in USD.
	MarketPrice float64 `json:"marketPrice"`

	// LowPrice is the low listing price. Optional.
	LowPrice *float64 `json:"lowPrice,omitempty"`

	// HighPrice is the high listing price. Optional.
	HighPrice *float64 `json:"highPrice,omitempty"`

	// CapturedAt is the capture timestamp string (RFC 3339).
	// Stored and hashed verbatim.
	CapturedAt string `json:"capturedAt"`
}

// ImageURLOrEmpty flattens the optional image reference for hashing
// and storage in NOT NULL contexts.
func (r Record) ImageURLOrEmpty() string {
	if r.ImageURL == nil {
		return ""
	}
	return *r.ImageURL
}

// Equal reports whether two records carry the same payload.
// Optional fields compare by value: nil only equals nil.
func (r Record) Equal(other Record) bool {
	return r.PrintingID == other.PrintingID &&
		r.Name == other.Name &&
		r.SetCode == other.SetCode &&
		r.CollectorNumber == other.CollectorNumber &&
		equalStringPtr(r.ImageURL, other.ImageURL) &&
		r.MarketPrice == other.MarketPrice &&
		equalFloatPtr(r.LowPrice, other.LowPrice) &&
		equalFloatPtr(r.HighPrice, other.HighPrice) &&
		r.CapturedAt == other.CapturedAt
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
