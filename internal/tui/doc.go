// Package tui implements the interactive watch screen of the wot-discover CLI.
//
// The screen is a Bubble Tea program following the Elm architecture: a
// WatchModel holds all state, Update returns a new model plus commands, and
// View is a pure function of the model.
//
// # Data Flow
//
// The caller owns the discovery stream and forwards each result as an
// Outcome on a channel. The model waits on that channel with a command,
// appends Things to a bubbles/list as they arrive, and counts failures.
// When the channel is closed the search is shown as finished.
//
//	outcomes := make(chan tui.Outcome)
//	go forward(stream, outcomes) // closes outcomes when the stream ends
//	final, err := tui.RunWatch(ctx, outcomes, 30*time.Second)
//
// # Framework Components
//
//   - bubbles/spinner: Searching indicator
//   - bubbles/progress: Elapsed time against the search timeout
//   - bubbles/list: Things with filtering
//   - bubbles/help: Context-aware key help
//   - lipgloss: Styling and layout
//
// Things are drawn with ui.ThingCard so the details view matches the
// output of the list command.
//
// # Key Bindings
//
//   - ↑/↓ navigate, Enter toggles details, / filters, ? expands help, q quits
package tui
