package tour

import (
	"strings"
	"testing"
)

func TestStartAlwaysBeginsAtStepZero(t *testing.T) {
	m := NewManager(nil)

	state := m.Start(1)
	if !state.Active {
		t.Fatal("Tour should be active after start")
	}
	if state.StepIndex != 0 {
		t.Errorf("Expected step index 0, got %d", state.StepIndex)
	}
	if state.Step == nil || state.Step.TargetID != "nav-dashboard" {
		t.Error("Step 0 payload should be the dashboard step")
	}

	// Advance, then restart: the cursor must go back to 0
	m.Next(1)
	m.Next(1)
	state = m.Start(1)
	if state.StepIndex != 0 {
		t.Errorf("Restart should reset to step 0, got %d", state.StepIndex)
	}
}

func TestDashboardStepDescribesOverviewContent(t *testing.T) {
	step := DefaultSteps()[0]
	if step.TargetID != "nav-dashboard" || step.Route != "/dashboard" {
		t.Fatalf("Step 0 should point at the dashboard, got %q -> %q", step.TargetID, step.Route)
	}
	// The copy must only promise what the overview screen shows: the active
	// trade, counters, and recent submissions
	for _, want := range []string{"active trade", "booking counts", "recent submissions"} {
		if !strings.Contains(step.Content, want) {
			t.Errorf("Step 0 content should mention %q, got %q", want, step.Content)
		}
	}
	if strings.Contains(strings.ToLower(step.Content), "revenue") {
		t.Errorf("Step 0 content promises a stat the overview does not show: %q", step.Content)
	}
}

func TestNextAtLastStepEndsTour(t *testing.T) {
	steps := []Step{
		{TargetID: "a", Route: "/a"},
		{TargetID: "b", Route: "/b"},
	}
	m := NewManager(steps)

	m.Start(7)
	state := m.Next(7)
	if !state.Active || state.StepIndex != 1 {
		t.Fatalf("Expected active at step 1, got active=%v index=%d", state.Active, state.StepIndex)
	}

	state = m.Next(7)
	if state.Active {
		t.Error("Next at the last step should end the tour, not wrap")
	}
	if state.Step != nil {
		t.Error("Inactive state should carry no step payload")
	}

	// Next while inactive stays inactive
	state = m.Next(7)
	if state.Active {
		t.Error("Next on an inactive tour should be a no-op")
	}
}

func TestPrevClampsAtZero(t *testing.T) {
	m := NewManager(nil)

	m.Start(3)
	state := m.Prev(3)
	if state.StepIndex != 0 {
		t.Errorf("Prev at step 0 should clamp, got %d", state.StepIndex)
	}

	m.Next(3)
	m.Next(3)
	state = m.Prev(3)
	if state.StepIndex != 1 {
		t.Errorf("Expected step 1 after prev from 2, got %d", state.StepIndex)
	}
}

func TestStopDiscardsCursor(t *testing.T) {
	m := NewManager(nil)

	m.Start(5)
	m.Next(5)
	state := m.Stop(5)
	if state.Active {
		t.Fatal("Tour should be inactive after stop")
	}

	// Restarting after a stop begins at step 0, not the resume point
	state = m.Start(5)
	if state.StepIndex != 0 {
		t.Errorf("Restart after stop should begin at 0, got %d", state.StepIndex)
	}
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	m := NewManager(nil)

	m.Start(1)
	m.Next(1)
	m.Start(2)

	if got := m.StateFor(1).StepIndex; got != 1 {
		t.Errorf("User 1 should be at step 1, got %d", got)
	}
	if got := m.StateFor(2).StepIndex; got != 0 {
		t.Errorf("User 2 should be at step 0, got %d", got)
	}
	if m.StateFor(3).Active {
		t.Error("User 3 never started a tour")
	}
}
