package handler

import (
	"strconv"
	"strings"

	"tradebook-service/internal/model"
)

// SubmissionQuery is the full filter state for the submissions screen.
// Filtering is a pure function of (rows, query): same inputs, same output,
// same order.
type SubmissionQuery struct {
	Search      string
	TradeNumber string
	Depot       string
	Type        string
	Details     string
	Unique      string // "", "name" or "phone"
}

// FilterSubmissions applies the free-text search, the per-field equality
// filters, and finally the optional de-duplication pass, preserving input
// order throughout.
func FilterSubmissions(rows []model.Submission, q SubmissionQuery) []model.Submission {
	filtered := make([]model.Submission, 0, len(rows))
	for _, sub := range rows {
		if q.Search != "" && !matchesSearch(sub, q.Search) {
			continue
		}
		if q.TradeNumber != "" && sub.TradeNumber != q.TradeNumber {
			continue
		}
		if q.Depot != "" && sub.Depot != q.Depot {
			continue
		}
		if q.Type != "" && sub.Type != q.Type {
			continue
		}
		if q.Details != "" && sub.Details != q.Details {
			continue
		}
		filtered = append(filtered, sub)
	}

	switch q.Unique {
	case "name":
		filtered = dedupeBy(filtered, func(sub model.Submission) string {
			return strings.ToLower(strings.TrimSpace(sub.Name))
		})
	case "phone":
		filtered = dedupeBy(filtered, func(sub model.Submission) string {
			return strings.TrimSpace(sub.PhoneNumber)
		})
	}
	return filtered
}

func matchesSearch(sub model.Submission, search string) bool {
	query := strings.ToLower(search)
	for _, field := range []string{sub.Name, sub.PhoneNumber, sub.Details, sub.Depot, sub.Type} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// dedupeBy keeps the first row per key in the current order
func dedupeBy(rows []model.Submission, key func(model.Submission) string) []model.Submission {
	seen := make(map[string]bool, len(rows))
	out := make([]model.Submission, 0, len(rows))
	for _, sub := range rows {
		k := key(sub)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, sub)
	}
	return out
}

// TotalWeight sums the rows' weights, coercing missing or non-numeric
// values to 0
func TotalWeight(rows []model.Submission) float64 {
	var total float64
	for _, sub := range rows {
		if w, err := strconv.ParseFloat(strings.TrimSpace(sub.Weight), 64); err == nil {
			total += w
		}
	}
	return total
}

// Visual tags cycled over fingerprint groups that appear more than once
var duplicateTagPalette = []string{"amber", "sky", "violet", "rose", "emerald", "orange"}

// DuplicateTags flags device fingerprints appearing more than once among the
// given rows. Each duplicated fingerprint gets a palette color, assigned in
// first-seen order and wrapping when groups outnumber the palette. Rows are
// never excluded or merged; the tags exist only to draw operator attention.
func DuplicateTags(rows []model.Submission) map[string]string {
	counts := make(map[string]int, len(rows))
	firstSeen := make([]string, 0)
	for _, sub := range rows {
		if sub.DeviceFingerprint == "" {
			continue
		}
		if counts[sub.DeviceFingerprint] == 0 {
			firstSeen = append(firstSeen, sub.DeviceFingerprint)
		}
		counts[sub.DeviceFingerprint]++
	}

	tags := make(map[string]string)
	next := 0
	for _, fp := range firstSeen {
		if counts[fp] > 1 {
			tags[fp] = duplicateTagPalette[next%len(duplicateTagPalette)]
			next++
		}
	}
	return tags
}
