// Package ui provides terminal UI components for the wot-discover CLI.
//
// This package uses Lipgloss to render polished terminal output for the
// non-interactive list command. Unlike the interactive watch screen in
// package tui, these components follow a "print and move on" pattern: they
// render output compellingly but don't require user interaction.
//
// # Components
//
//   - Header: Command banner showing the service type and options
//   - ThingCard: One discovered Thing with its URL, addresses and affordances
//   - Result: Success/warning/failure summary boxes with troubleshooting tips
//
// ThingCard is also the list item of the watch screen, so both commands
// show Things the same way.
//
// # Usage Pattern
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader(ui.NewHeader("Thing Discovery", "wot-discover list",
//	    ui.Param{Key: "Service", Value: "_wot._tcp.local."}))
//	p.PrintThing(card)
//	p.PrintResult(ui.NewSuccessResult("Discovery complete",
//	    ui.Param{Key: "Things", Value: "3"}))
//
// # Logging Integration
//
// This package expects logging to be controlled via the WOT_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
