package ui

import "github.com/gentlepom/gentlepom/internal/engine"

// SnapshotMsg carries a timer state snapshot into the bubbletea loop.
type SnapshotMsg engine.Snapshot

// TaskSelectedMsg is sent when the user picks a task in the tasks view.
type TaskSelectedMsg struct {
	Name string
	Path string
}
