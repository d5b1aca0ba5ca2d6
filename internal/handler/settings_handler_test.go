package handler

import "testing"

func TestPreviewOpeningDateFormatsISODates(t *testing.T) {
	got := previewOpeningDate("2026-01-01")
	if got != "Thursday, January 1, 2026" {
		t.Errorf("Expected long-form date, got %q", got)
	}
}

func TestPreviewOpeningDateIsEmptyForBadInput(t *testing.T) {
	for _, value := range []string{"", "not-a-date", "01/09/2026", "2026-13-40"} {
		if got := previewOpeningDate(value); got != "" {
			t.Errorf("Expected empty preview for %q, got %q", value, got)
		}
	}
}
