// Package history implements an in-memory undo/redo command stack. Each
// command carries a pair of closures that apply and revert a mutation; the
// history only sequences them and never touches storage itself.
package history

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// DefaultLimit is the number of undoable commands kept before the oldest
// is evicted.
const DefaultLimit = 50

// Action applies or reverts a single mutation.
type Action func(ctx context.Context) error

// Command is a recorded mutation with its inverse.
type Command struct {
	Type        string
	Description string
	Undo        Action
	Redo        Action
}

// State is an observable snapshot of the history, suitable for driving
// menu items or shortcuts.
type State struct {
	CanUndo         bool   `json:"canUndo"`
	CanRedo         bool   `json:"canRedo"`
	UndoDescription string `json:"undoDescription,omitempty"`
	RedoDescription string `json:"redoDescription,omitempty"`
	UndoCount       int    `json:"undoCount"`
	RedoCount       int    `json:"redoCount"`
}

// History holds the undo and redo stacks. It is not safe for concurrent
// use; callers serialize access the same way they serialize mutations.
type History struct {
	limit     int
	undoStack []*Command
	redoStack []*Command
	onChange  func(State)
	logger    *log.Logger
}

// New creates a history retaining at most limit undoable commands. A
// non-positive limit falls back to DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		limit: limit,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "history",
		}),
	}
}

// OnChange registers a single observer invoked after every stack change.
func (h *History) OnChange(fn func(State)) {
	h.onChange = fn
}

// Push records an executed command and clears the redo stack. Commands
// missing either action are ignored.
func (h *History) Push(cmd *Command) {
	if cmd == nil || cmd.Undo == nil || cmd.Redo == nil {
		h.logger.Warn("ignoring incomplete command", "type", commandType(cmd))
		return
	}
	h.undoStack = append(h.undoStack, cmd)
	h.redoStack = nil
	if len(h.undoStack) > h.limit {
		// Oldest first: forgetting distant history beats refusing new work.
		h.undoStack = h.undoStack[1:]
	}
	h.notify()
}

// Undo reverts the most recent command and moves it to the redo stack.
// Returns nil without error when there is nothing to undo. If the undo
// action fails the command stays on the undo stack.
func (h *History) Undo(ctx context.Context) (*Command, error) {
	if len(h.undoStack) == 0 {
		return nil, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	if err := cmd.Undo(ctx); err != nil {
		h.undoStack = append(h.undoStack, cmd)
		h.logger.Error("undo failed", "type", cmd.Type, "err", err)
		return nil, fmt.Errorf("undoing %s: %w", cmd.Type, err)
	}

	h.redoStack = append(h.redoStack, cmd)
	h.logger.Debug("undid command", "type", cmd.Type)
	h.notify()
	return cmd, nil
}

// Redo re-applies the most recently undone command and moves it back to
// the undo stack. Returns nil without error when there is nothing to redo.
// If the redo action fails the command stays on the redo stack.
func (h *History) Redo(ctx context.Context) (*Command, error) {
	if len(h.redoStack) == 0 {
		return nil, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	if err := cmd.Redo(ctx); err != nil {
		h.redoStack = append(h.redoStack, cmd)
		h.logger.Error("redo failed", "type", cmd.Type, "err", err)
		return nil, fmt.Errorf("redoing %s: %w", cmd.Type, err)
	}

	h.undoStack = append(h.undoStack, cmd)
	h.logger.Debug("redid command", "type", cmd.Type)
	h.notify()
	return cmd, nil
}

// CanUndo reports whether an undoable command exists.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether a redoable command exists.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear drops both stacks, e.g. after an import replaces the database.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.notify()
}

// State snapshots the current stacks.
func (h *History) State() State {
	st := State{
		CanUndo:   len(h.undoStack) > 0,
		CanRedo:   len(h.redoStack) > 0,
		UndoCount: len(h.undoStack),
		RedoCount: len(h.redoStack),
	}
	if st.CanUndo {
		st.UndoDescription = h.undoStack[len(h.undoStack)-1].Description
	}
	if st.CanRedo {
		st.RedoDescription = h.redoStack[len(h.redoStack)-1].Description
	}
	return st
}

func (h *History) notify() {
	if h.onChange != nil {
		h.onChange(h.State())
	}
}

func commandType(cmd *Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.Type
}
