package pipeline

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/cardsync/models"
)

// sourceCard is the raw card shape of the upstream dump. Only the
// fields the catalog publishes are decoded; everything else in the
// payload is ignored.
type sourceCard struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Set             string           `json:"set"`
	CollectorNumber string           `json:"collector_number"`
	ReleasedAt      string           `json:"released_at"`
	ImageURIs       *sourceImageURIs `json:"image_uris"`
	CardFaces       []sourceCardFace `json:"card_faces"`
	Prices          *sourcePrices    `json:"prices"`
}

type sourceImageURIs struct {
	Normal string `json:"normal"`
}

type sourceCardFace struct {
	ImageURIs *sourceImageURIs `json:"image_uris"`
}

type sourcePrices struct {
	USD string `json:"usd"`
}

// LoadSource reads one source dump from disk and normalizes it into
// publishable records. A ".gz" file is decompressed transparently.
func LoadSource(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, gzErr := gzip.NewReader(file)
		if gzErr != nil {
			return nil, fmt.Errorf("open gzip source %s: %w", path, gzErr)
		}
		defer gz.Close()
		reader = gz
	}

	return DecodeSource(reader)
}

// DecodeSource decodes a JSON array of raw cards and normalizes it into
// records sorted by printing id. Cards without an id are dropped.
func DecodeSource(r io.Reader) ([]models.Record, error) {
	var cards []sourceCard
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode source dump: %w", err)
	}

	records := make([]models.Record, 0, len(cards))
	for _, card := range cards {
		if card.ID == "" {
			continue
		}
		records = append(records, normalizeCard(card))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PrintingID < records[j].PrintingID
	})

	return records, nil
}

// normalizeCard maps one raw card onto the published record shape:
// the set code is lowercased, a missing top-level image falls back to
// the first card face, and an absent or malformed price becomes 0.0.
func normalizeCard(card sourceCard) models.Record {
	return models.Record{
		PrintingID:      card.ID,
		Name:            card.Name,
		SetCode:         strings.ToLower(card.Set),
		CollectorNumber: card.CollectorNumber,
		ImageURL:        imageURL(card),
		MarketPrice:     marketPrice(card.Prices),
		CapturedAt:      card.ReleasedAt,
	}
}

func imageURL(card sourceCard) *string {
	if card.ImageURIs != nil && card.ImageURIs.Normal != "" {
		url := card.ImageURIs.Normal
		return &url
	}

	if len(card.CardFaces) > 0 {
		face := card.CardFaces[0]
		if face.ImageURIs != nil && face.ImageURIs.Normal != "" {
			url := face.ImageURIs.Normal
			return &url
		}
	}

	return nil
}

// marketPrice parses the upstream USD price string. Absent or
// malformed prices publish as 0.0 rather than dropping the card.
func marketPrice(prices *sourcePrices) float64 {
	if prices == nil || prices.USD == "" {
		return 0
	}

	value, err := strconv.ParseFloat(prices.USD, 64)
	if err != nil {
		return 0
	}

	return value
}
