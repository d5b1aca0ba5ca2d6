// Package tour implements the guided dashboard walkthrough as an explicit
// state machine. Each admin user has an independent cursor over a fixed step
// table; the client renders the spotlight overlay from the step metadata and
// navigates to the step's route when it differs from the current page.
package tour

import "sync"

// Step describes one stop of the walkthrough
type Step struct {
	TargetID string `json:"target_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position string `json:"position"`
	Route    string `json:"route"`
}

// State is a snapshot of one user's tour
type State struct {
	Active    bool  `json:"active"`
	StepIndex int   `json:"step_index"`
	StepCount int   `json:"step_count"`
	Step      *Step `json:"step,omitempty"`
}

// DefaultSteps returns the dashboard walkthrough in display order
func DefaultSteps() []Step {
	return []Step{
		{
			TargetID: "nav-dashboard",
			Title:    "Dashboard Overview",
			Content:  "Get a quick glance at your active trade, booking counts, and recent submissions here.",
			Position: "right",
			Route:    "/dashboard",
		},
		{
			TargetID: "nav-trades",
			Title:    "Manage Trades",
			Content:  "Create, edit, and close trades. This is where you define the ACTIVE trade for the week.",
			Position: "right",
			Route:    "/dashboard/trades",
		},
		{
			TargetID: "nav-pooling-schedule",
			Title:    "Pooling Schedule",
			Content:  "Set up collection points and dates. Link them to specific trades so farmers know where to go.",
			Position: "right",
			Route:    "/dashboard/pooling",
		},
		{
			TargetID: "nav-dropdowns",
			Title:    "Dropdown Options",
			Content:  "Manage the options available in forms (like Depot locations, Types, etc.) without touching code.",
			Position: "right",
			Route:    "/dashboard/dropdowns",
		},
		{
			TargetID: "nav-submissions",
			Title:    "View Submissions",
			Content:  "See all booking requests from farmers. You can filter, export to CSV/JSON, and detect duplicates.",
			Position: "right",
			Route:    "/dashboard/submissions",
		},
		{
			TargetID: "nav-weekly-reset",
			Title:    "Weekly Reset",
			Content:  "One-click system to close the current trade and start a new one. Handles all the cleanup for you.",
			Position: "right",
			Route:    "/dashboard/reset",
		},
		{
			TargetID: "nav-settings",
			Title:    "Global Settings",
			Content:  "Access general admin settings and view system information.",
			Position: "right",
			Route:    "/dashboard/settings",
		},
	}
}

// Manager holds per-user tour cursors. A user absent from the sessions map
// is not touring.
type Manager struct {
	mu       sync.Mutex
	steps    []Step
	sessions map[uint]int
}

// NewManager creates a manager over the given steps; nil means DefaultSteps
func NewManager(steps []Step) *Manager {
	if steps == nil {
		steps = DefaultSteps()
	}
	return &Manager{
		steps:    steps,
		sessions: make(map[uint]int),
	}
}

// Steps returns the full step table
func (m *Manager) Steps() []Step {
	return m.steps
}

func (m *Manager) snapshot(userID uint) State {
	index, active := m.sessions[userID]
	state := State{
		Active:    active,
		StepIndex: index,
		StepCount: len(m.steps),
	}
	if active {
		step := m.steps[index]
		state.Step = &step
	}
	return state
}

// StateFor returns the user's current tour snapshot
func (m *Manager) StateFor(userID uint) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(userID)
}

// Start begins (or restarts) the tour at step 0, regardless of prior state
func (m *Manager) Start(userID uint) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = 0
	return m.snapshot(userID)
}

// Next advances one step; at the last step the tour ends instead of wrapping
func (m *Manager) Next(userID uint) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	index, active := m.sessions[userID]
	if !active {
		return m.snapshot(userID)
	}
	if index+1 < len(m.steps) {
		m.sessions[userID] = index + 1
	} else {
		delete(m.sessions, userID)
	}
	return m.snapshot(userID)
}

// Prev steps back, clamping at step 0
func (m *Manager) Prev(userID uint) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	index, active := m.sessions[userID]
	if !active {
		return m.snapshot(userID)
	}
	if index > 0 {
		m.sessions[userID] = index - 1
	}
	return m.snapshot(userID)
}

// Stop ends the tour and discards the cursor; restarting begins at step 0
func (m *Manager) Stop(userID uint) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return m.snapshot(userID)
}
