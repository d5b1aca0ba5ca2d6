package handler

import (
	"testing"
	"time"

	"tradebook-service/internal/model"
)

func TestCSVRowFormatsTimestampWithoutHourPadding(t *testing.T) {
	sub := model.Submission{
		Name:        "Asha Patel",
		TradeNumber: "T001",
		SubmittedAt: time.Date(2026, time.March, 5, 15, 4, 0, 0, time.UTC),
	}

	row := csvRow(sub)
	if got := row[len(row)-1]; got != "5 Mar 2026, 3:04 PM" {
		t.Errorf("Expected unpadded 12-hour time, got %q", got)
	}

	sub.SubmittedAt = time.Date(2026, time.March, 5, 9, 7, 0, 0, time.UTC)
	row = csvRow(sub)
	if got := row[len(row)-1]; got != "5 Mar 2026, 9:07 AM" {
		t.Errorf("Expected unpadded morning time, got %q", got)
	}
}

func TestCSVRowFallsBackForMissingTradeNumber(t *testing.T) {
	row := csvRow(model.Submission{Name: "Asha Patel"})
	if row[6] != "N/A" {
		t.Errorf("Expected N/A trade number, got %q", row[6])
	}

	row = csvRow(model.Submission{Name: "Asha Patel", TradeNumber: "T002"})
	if row[6] != "T002" {
		t.Errorf("Expected trade number passed through, got %q", row[6])
	}
}
