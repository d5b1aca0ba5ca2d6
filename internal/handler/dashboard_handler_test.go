package handler

import (
	"testing"

	"tradebook-service/internal/model"
)

func TestCapRecentLimitsNewestFirstRows(t *testing.T) {
	rows := make([]model.Submission, 8)
	for i := range rows {
		rows[i] = model.Submission{ID: uint(i + 1)}
	}

	got := capRecent(rows, recentSubmissionCount)
	if len(got) != recentSubmissionCount {
		t.Fatalf("Expected %d rows, got %d", recentSubmissionCount, len(got))
	}
	// Input is newest-first, so the cap must keep the head of the slice
	for i, sub := range got {
		if sub.ID != uint(i+1) {
			t.Errorf("Position %d: expected id %d, got %d", i, i+1, sub.ID)
		}
	}
}

func TestCapRecentKeepsShortSlices(t *testing.T) {
	rows := []model.Submission{{ID: 1}, {ID: 2}}

	got := capRecent(rows, recentSubmissionCount)
	if len(got) != 2 {
		t.Errorf("Expected all 2 rows, got %d", len(got))
	}

	if got := capRecent(nil, recentSubmissionCount); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %d rows", len(got))
	}
}
