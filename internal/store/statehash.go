// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/cardsync/internal/utils"
	"github.com/MKhiriev/cardsync/models"
)

// ComputeStateHashForRows fingerprints one version of the catalog.
//
// The digest is sha256 over a seed line holding the dataset name
// followed by one line per row, rows ordered by printing id ascending.
// Sorting happens here rather than in SQL so that every storage backend
// produces byte-identical input regardless of collation.
//
// An empty row set hashes the seed alone, which is the defined hash of
// a never-synced dataset.
func ComputeStateHashForRows(dataset string, rows []models.Record) string {
	sorted := make([]models.Record, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PrintingID < sorted[j].PrintingID
	})

	b := new(strings.Builder)
	b.WriteString(dataset)
	b.WriteString("\n")
	for _, row := range sorted {
		appendHashRow(b, row)
	}

	return utils.Sha256HexString(b.String())
}

// appendHashRow writes one row's hash line. The market price is fixed
// to six decimals; the captured-at string is hashed verbatim, exactly
// as published.
func appendHashRow(b *strings.Builder, r models.Record) {
	fmt.Fprintf(b, "%s|%s|%s|%s|%s|%.6f|%s\n",
		r.PrintingID,
		r.Name,
		r.SetCode,
		r.CollectorNumber,
		r.ImageURLOrEmpty(),
		r.MarketPrice,
		r.CapturedAt,
	)
}
