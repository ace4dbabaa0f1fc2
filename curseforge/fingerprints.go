package curseforge

import (
	"context"
	"fmt"
)

// FingerprintMatch is one match record. The API embeds whole file payloads;
// they are promoted to File objects so they behave like directly fetched files.
// Fields the API adds beyond the declared ones are kept in Extra.
type FingerprintMatch struct {
	ID          int            `json:"id"`
	File        *File          `json:"file"`
	LatestFiles []*File        `json:"latestFiles"`
	Extra       map[string]any `json:"extra,omitempty,remain"`
}

// FingerprintsMatches is the result of an exact/partial fingerprint lookup.
type FingerprintsMatches struct {
	IsCacheBuilt             bool               `json:"isCacheBuilt"`
	ExactMatches             []FingerprintMatch `json:"exactMatches"`
	ExactFingerprints        []int64            `json:"exactFingerprints"`
	PartialMatches           []FingerprintMatch `json:"partialMatches"`
	PartialMatchFingerprints map[string][]int64 `json:"partialMatchFingerprints"`
	AdditionalProperties     []int64            `json:"additionalProperties"`
	InstalledFingerprints    []int64            `json:"installedFingerprints"`
	UnmatchedFingerprints    []int64            `json:"unmatchedFingerprints"`
}

// FingerprintFuzzyMatch is a fuzzy match record along with the fingerprints
// that produced it.
type FingerprintFuzzyMatch struct {
	ID           int            `json:"id"`
	File         *File          `json:"file"`
	LatestFiles  []*File        `json:"latestFiles"`
	Fingerprints []int64        `json:"fingerprints"`
	Extra        map[string]any `json:"extra,omitempty,remain"`
}

// promoted is the set of match fields rebuilt as File objects.
var promoted = map[string]bool{"file": true, "latestFiles": true}

// splitMatch copies every field of a raw match record except the promoted
// ones, and materializes the promoted ones.
func splitMatch(c *Client, raw any) (rest map[string]any, file *File, latest []*File, err error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, nil, &DecodeError{Type: "fingerprint match", Err: fmt.Errorf("expected object, got %T", raw)}
	}

	rest = make(map[string]any, len(record))
	for k, v := range record {
		if !promoted[k] {
			rest[k] = v
		}
	}

	if record["file"] != nil {
		if file, err = newFile(c, record["file"]); err != nil {
			return nil, nil, nil, fmt.Errorf("file: %w", err)
		}
	}
	if latest, err = materializeArray(c, record["latestFiles"], newFile); err != nil {
		return nil, nil, nil, fmt.Errorf("latestFiles: %w", err)
	}
	return rest, file, latest, nil
}

func newFingerprintMatch(c *Client, raw any) (FingerprintMatch, error) {
	var m FingerprintMatch
	rest, file, latest, err := splitMatch(c, raw)
	if err != nil {
		return m, err
	}
	if err := decodeInto(rest, &m); err != nil {
		return m, err
	}
	m.File, m.LatestFiles = file, latest
	return m, nil
}

func newFingerprintFuzzyMatch(c *Client, raw any) (FingerprintFuzzyMatch, error) {
	var m FingerprintFuzzyMatch
	rest, file, latest, err := splitMatch(c, raw)
	if err != nil {
		return m, err
	}
	if err := decodeInto(rest, &m); err != nil {
		return m, err
	}
	m.File, m.LatestFiles = file, latest
	return m, nil
}

// GetFingerprintsMatches looks up files by exact fingerprint. Exact and
// partial matches carry materialized files; everything else passes through.
func (c *Client) GetFingerprintsMatches(ctx context.Context, fingerprints []int64) (*FingerprintsMatches, error) {
	body := map[string]any{"fingerprints": nonNil(fingerprints)}
	data, err := c.fetchData(ctx, "/v1/fingerprints", request{body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to match fingerprints: %w", err)
	}

	record, ok := data.(map[string]any)
	if !ok {
		return nil, &DecodeError{Type: "*curseforge.FingerprintsMatches", Err: fmt.Errorf("expected object, got %T", data)}
	}
	rest := make(map[string]any, len(record))
	for k, v := range record {
		if k != "exactMatches" && k != "partialMatches" {
			rest[k] = v
		}
	}

	var out FingerprintsMatches
	if err := decodeInto(rest, &out); err != nil {
		return nil, err
	}
	if out.ExactMatches, err = materializeArray(c, record["exactMatches"], newFingerprintMatch); err != nil {
		return nil, fmt.Errorf("exactMatches: %w", err)
	}
	if out.PartialMatches, err = materializeArray(c, record["partialMatches"], newFingerprintMatch); err != nil {
		return nil, fmt.Errorf("partialMatches: %w", err)
	}
	return &out, nil
}

// GetFingerprintsFuzzyMatches matches per-folder fingerprints. Fuzzy results
// are not cached by the API, so there is no cache flag to report.
func (c *Client) GetFingerprintsFuzzyMatches(ctx context.Context, req FuzzyMatchesRequest) ([]FingerprintFuzzyMatch, error) {
	req.Fingerprints = nonNil(req.Fingerprints)
	data, err := c.fetchData(ctx, "/v1/fingerprints/fuzzy", request{body: req})
	if err != nil {
		return nil, fmt.Errorf("failed to fuzzy match fingerprints: %w", err)
	}

	matches, err := field(data, "fuzzyMatches")
	if err != nil {
		return nil, err
	}
	return materializeArray(c, matches, newFingerprintFuzzyMatch)
}
