package handler

import (
	"errors"
	"testing"

	"tradebook-service/internal/model"
)

func TestApplyPoolingOrderReassignsContiguousIndices(t *testing.T) {
	rows := []model.PoolingSchedule{
		{ID: 1, Location: "North Depot", OrderIndex: 0},
		{ID: 2, Location: "South Depot", OrderIndex: 1},
	}

	ordered, err := applyPoolingOrder(rows, []uint{2, 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ordered[0].ID != 2 || ordered[0].OrderIndex != 0 {
		t.Errorf("Expected row 2 first at index 0, got id=%d index=%d", ordered[0].ID, ordered[0].OrderIndex)
	}
	if ordered[1].ID != 1 || ordered[1].OrderIndex != 1 {
		t.Errorf("Expected row 1 second at index 1, got id=%d index=%d", ordered[1].ID, ordered[1].OrderIndex)
	}
}

func TestApplyPoolingOrderRejectsBadIDSets(t *testing.T) {
	rows := []model.PoolingSchedule{
		{ID: 1, OrderIndex: 0},
		{ID: 2, OrderIndex: 1},
		{ID: 3, OrderIndex: 2},
	}

	if _, err := applyPoolingOrder(rows, []uint{3, 1}); err == nil {
		t.Error("Short id list should be rejected")
	}
	if _, err := applyPoolingOrder(rows, []uint{3, 1, 99}); err == nil {
		t.Error("Unknown id should be rejected")
	}
	if _, err := applyPoolingOrder(rows, []uint{3, 1, 1}); err == nil {
		t.Error("Duplicate id should be rejected")
	}
}

func TestApplyPoolingOrderDoesNotMutateInput(t *testing.T) {
	rows := []model.PoolingSchedule{
		{ID: 1, OrderIndex: 0},
		{ID: 2, OrderIndex: 1},
	}

	if _, err := applyPoolingOrder(rows, []uint{2, 1}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rows[0].OrderIndex != 0 || rows[1].OrderIndex != 1 {
		t.Error("Input rows should keep their original indices")
	}
}

func TestApplyOptionOrderReassignsContiguousIndices(t *testing.T) {
	options := []model.DropdownOption{
		{ID: 10, Category: model.CategoryDepot, Label: "North", OrderIndex: 0},
		{ID: 11, Category: model.CategoryDepot, Label: "South", OrderIndex: 1},
		{ID: 12, Category: model.CategoryDepot, Label: "East", OrderIndex: 2},
	}

	ordered, err := applyOptionOrder(options, []uint{12, 10, 11})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantIDs := []uint{12, 10, 11}
	for i, opt := range ordered {
		if opt.ID != wantIDs[i] {
			t.Errorf("Position %d: expected id %d, got %d", i, wantIDs[i], opt.ID)
		}
		if opt.OrderIndex != i {
			t.Errorf("Position %d: expected index %d, got %d", i, i, opt.OrderIndex)
		}
	}
}

// Payload validation failures must stay distinguishable from storage
// failures: the reorder handlers map reorderError to 400 and everything
// else to 500.
func TestReorderValidationErrorsAreTyped(t *testing.T) {
	rows := []model.PoolingSchedule{{ID: 1}, {ID: 2}}
	options := []model.DropdownOption{{ID: 10}, {ID: 11}}

	var badOrder reorderError
	for name, err := range map[string]error{
		"pooling short":     mustErr(applyPoolingOrder(rows, []uint{1})),
		"pooling unknown":   mustErr(applyPoolingOrder(rows, []uint{1, 99})),
		"pooling duplicate": mustErr(applyPoolingOrder(rows, []uint{1, 1})),
		"option short":      mustErrOpt(applyOptionOrder(options, []uint{10})),
		"option unknown":    mustErrOpt(applyOptionOrder(options, []uint{10, 99})),
		"option duplicate":  mustErrOpt(applyOptionOrder(options, []uint{10, 10})),
	} {
		if !errors.As(err, &badOrder) {
			t.Errorf("%s: expected a reorderError, got %T (%v)", name, err, err)
		}
	}

	if dbErr := errors.New("connection reset"); errors.As(dbErr, &badOrder) {
		t.Error("Plain errors must not be classified as payload validation failures")
	}
}

func mustErr(_ []model.PoolingSchedule, err error) error {
	return err
}

func mustErrOpt(_ []model.DropdownOption, err error) error {
	return err
}

func TestApplyOptionOrderRejectsBadIDSets(t *testing.T) {
	options := []model.DropdownOption{
		{ID: 10, OrderIndex: 0},
		{ID: 11, OrderIndex: 1},
	}

	if _, err := applyOptionOrder(options, []uint{10}); err == nil {
		t.Error("Short id list should be rejected")
	}
	if _, err := applyOptionOrder(options, []uint{10, 42}); err == nil {
		t.Error("Unknown id should be rejected")
	}
	if _, err := applyOptionOrder(options, []uint{10, 10}); err == nil {
		t.Error("Duplicate id should be rejected")
	}
}
