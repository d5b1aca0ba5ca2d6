package handler

import (
	"reflect"
	"testing"

	"tradebook-service/internal/model"
)

func sampleSubmissions() []model.Submission {
	return []model.Submission{
		{ID: 1, Name: "Asha Patel", PhoneNumber: "9000000001", Details: "Grade A", Weight: "10", Type: "Loose", Depot: "North", DeviceFingerprint: "fp-1", TradeNumber: "T001"},
		{ID: 2, Name: "Ravi Kumar", PhoneNumber: "9000000002", Details: "Grade B", Weight: "20", Type: "Bagged", Depot: "South", DeviceFingerprint: "fp-2", TradeNumber: "T001"},
		{ID: 3, Name: "asha patel ", PhoneNumber: "9000000003", Details: "Grade A", Weight: "5", Type: "Loose", Depot: "North", DeviceFingerprint: "fp-1", TradeNumber: "T002"},
		{ID: 4, Name: "Meena Devi", PhoneNumber: " 9000000002", Details: "Grade C", Weight: "x", Type: "Loose", Depot: "East", DeviceFingerprint: "", TradeNumber: "T002"},
	}
}

func TestFilterBySearchIsCaseInsensitive(t *testing.T) {
	rows := sampleSubmissions()

	got := FilterSubmissions(rows, SubmissionQuery{Search: "RAVI"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Expected only row 2, got %v", got)
	}

	// Search spans depot and type fields too
	got = FilterSubmissions(rows, SubmissionQuery{Search: "north"})
	if len(got) != 2 {
		t.Errorf("Expected 2 rows matching depot search, got %d", len(got))
	}
}

func TestFilterCombinesFieldFiltersConjunctively(t *testing.T) {
	rows := sampleSubmissions()

	got := FilterSubmissions(rows, SubmissionQuery{Type: "Loose", Depot: "North"})
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}

	got = FilterSubmissions(rows, SubmissionQuery{Type: "Loose", Depot: "North", TradeNumber: "T002"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Expected only row 3, got %v", got)
	}
}

func TestFilterIsPureAndIdempotent(t *testing.T) {
	rows := sampleSubmissions()
	query := SubmissionQuery{Search: "grade", Type: "Loose", Unique: "name"}

	first := FilterSubmissions(rows, query)
	second := FilterSubmissions(rows, query)
	if !reflect.DeepEqual(first, second) {
		t.Error("Same inputs should yield the same filtered output")
	}

	again := FilterSubmissions(first, query)
	if !reflect.DeepEqual(first, again) {
		t.Error("Filtering an already-filtered set should be a no-op")
	}
}

func TestDedupeByNameNormalizesKey(t *testing.T) {
	rows := sampleSubmissions()

	// Rows 1 and 3 share the name after trimming and case folding
	got := FilterSubmissions(rows, SubmissionQuery{Unique: "name"})
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows after name dedupe, got %d", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("Dedupe should keep the first occurrence, got row %d first", got[0].ID)
	}
	for _, sub := range got {
		if sub.ID == 3 {
			t.Error("Row 3 duplicates row 1's normalized name and should be dropped")
		}
	}
}

func TestDedupeByPhoneTrimsKey(t *testing.T) {
	rows := sampleSubmissions()

	// Rows 2 and 4 share the phone number after trimming
	got := FilterSubmissions(rows, SubmissionQuery{Unique: "phone"})
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows after phone dedupe, got %d", len(got))
	}
	for _, sub := range got {
		if sub.ID == 4 {
			t.Error("Row 4 duplicates row 2's trimmed phone and should be dropped")
		}
	}
}

func TestTotalWeightCoercesNonNumericToZero(t *testing.T) {
	rows := []model.Submission{
		{Weight: "10"},
		{Weight: "20"},
		{Weight: ""},
		{Weight: "abc"},
		{Weight: " 2.5 "},
	}

	if got := TotalWeight(rows); got != 32.5 {
		t.Errorf("Expected total 32.5, got %v", got)
	}

	if got := TotalWeight(nil); got != 0 {
		t.Errorf("Expected 0 for empty set, got %v", got)
	}
}

func TestDuplicateTagsFlagRepeatedFingerprints(t *testing.T) {
	rows := sampleSubmissions()

	tags := DuplicateTags(rows)
	if len(tags) != 1 {
		t.Fatalf("Expected exactly one duplicated fingerprint, got %v", tags)
	}
	if _, ok := tags["fp-1"]; !ok {
		t.Error("fp-1 appears twice and should be tagged")
	}
	if _, ok := tags["fp-2"]; ok {
		t.Error("fp-2 appears once and should not be tagged")
	}
	if _, ok := tags[""]; ok {
		t.Error("Empty fingerprints should never be tagged")
	}
}

func TestDuplicateTagsPaletteWraps(t *testing.T) {
	var rows []model.Submission
	groups := len(duplicateTagPalette) + 2
	for i := 0; i < groups; i++ {
		fp := "fp-" + string(rune('a'+i))
		rows = append(rows, model.Submission{DeviceFingerprint: fp}, model.Submission{DeviceFingerprint: fp})
	}

	tags := DuplicateTags(rows)
	if len(tags) != groups {
		t.Fatalf("Expected %d tagged groups, got %d", groups, len(tags))
	}

	// First-seen order determines palette assignment; group 0 and the
	// first wrapped group share a color
	if tags["fp-a"] != duplicateTagPalette[0] {
		t.Errorf("First group should take the first palette entry, got %q", tags["fp-a"])
	}
	wrapped := "fp-" + string(rune('a'+len(duplicateTagPalette)))
	if tags[wrapped] != duplicateTagPalette[0] {
		t.Errorf("Palette should wrap for group %d, got %q", len(duplicateTagPalette), tags[wrapped])
	}
}
