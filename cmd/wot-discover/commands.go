package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muurk/wot-discovery/discovery"
	"github.com/muurk/wot-discovery/internal/config"
	"github.com/muurk/wot-discovery/internal/logging"
	"github.com/muurk/wot-discovery/internal/tui"
	"github.com/muurk/wot-discovery/internal/ui"
	"github.com/muurk/wot-discovery/internal/urls"
)

// List command flags
var (
	flagFormat string
	flagPretty bool
)

func init() {
	listCmd.Flags().StringVar(&flagFormat, "format", config.FormatText, "Output format (text, json)")
	listCmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent JSON output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

// troubleshooting is shown when discovery fails or finds nothing
var troubleshooting = []string{
	"Ensure the Thing advertises " + discovery.ServiceType,
	"Check that multicast traffic (UDP 5353) is allowed",
	"Try --ip v4 or --interface to pick the right network",
	"Try increasing --timeout for slow networks",
	"Advertising format: " + urls.DNSSDIntroduction,
}

// listCmd discovers Things for a fixed time and prints them
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Discover Things and print them",
	Long: `Browse for Things advertising _wot._tcp and print each Thing
Description as it is fetched.

Results appear in the order their descriptions arrive. Failures for single
Things are reported and discovery continues.`,
	Example: `  # Browse for 10 seconds (default)
  wot-discover list

  # Browse until interrupted
  wot-discover list --timeout 0

  # JSON lines for scripting
  wot-discover list --format json

  # Indented JSON, IPv4 only
  wot-discover list --format json --pretty --ip v4`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s := resolveSettings(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := s.options()
	if err != nil {
		return err
	}

	d, err := newCLIDiscoverer(opts...)
	if err != nil {
		return reportStartFailure(cmd.OutOrStdout(), s, err)
	}

	return listThings(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), d, s)
}

// listThings runs one discovery session and writes the results to out
func listThings(ctx context.Context, out, errOut io.Writer, d *cliDiscoverer, s settings) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stream, err := d.Stream(ctx)
	if err != nil {
		return reportStartFailure(out, s, err)
	}
	defer stream.Close()

	var printer *ui.Printer
	var encoder *json.Encoder
	if s.format == config.FormatJSON {
		encoder = json.NewEncoder(out)
		if s.pretty {
			encoder.SetIndent("", "  ")
		}
	} else {
		printer = ui.NewPrinter(out)
		printer.PrintHeader(ui.NewHeader("Thing Discovery", "wot-discover list",
			ui.Param{Key: "Service", Value: discovery.ServiceType},
			ui.Param{Key: "Timeout", Value: timeoutLabel(s)},
			ui.Param{Key: "Extensions", Value: fmt.Sprint(d.Extensions())},
		))
	}

	found, failed := 0, 0
	for rec, err := range stream.All() {
		if err != nil {
			failed++
			logging.LogDiscoveryError(err)
			if printer != nil {
				printer.PrintFailure(discovery.ShortMessage(err))
			} else {
				fmt.Fprintf(errOut, "warning: %s\n", discovery.ShortMessage(err))
			}
			continue
		}

		found++
		logRecord(rec)

		if printer != nil {
			printer.PrintThing(cardFromRecord(rec))
			continue
		}
		if err := encoder.Encode(entryFromRecord(rec)); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	}

	if printer != nil {
		printer.PrintResult(summaryResult(found, failed))
	}
	return nil
}

// reportStartFailure explains a failure to open the discovery session
func reportStartFailure(out io.Writer, s settings, err error) error {
	if s.format != config.FormatJSON {
		ui.NewPrinter(out).PrintResult(
			ui.NewFailureResult("Discovery could not start", err, troubleshooting),
		)
	}
	return fmt.Errorf("discovery failed: %w", err)
}

// summaryResult builds the closing box of the list command
func summaryResult(found, failed int) *ui.Result {
	if found == 0 {
		r := ui.NewWarningResult("No Things found").
			AddDetail("Errors", strconv.Itoa(failed))
		return r.AddTroubleshooting(troubleshooting...)
	}
	return ui.NewSuccessResult("Discovery complete",
		ui.Param{Key: "Things", Value: strconv.Itoa(found)},
		ui.Param{Key: "Errors", Value: strconv.Itoa(failed)},
	)
}

func timeoutLabel(s settings) string {
	if s.timeout <= 0 {
		return "until interrupted"
	}
	return s.timeout.String()
}

// watchCmd shows a live view of discovered Things
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show discovered Things live",
	Long: `Open a full-screen view that lists Things as they are discovered.

Use the arrow keys to select a Thing and Enter to see its details. When
stdout is not a terminal this behaves like 'wot-discover list'.`,
	Example: `  # Watch for 30 seconds, then keep the results on screen
  wot-discover watch --timeout 30s

  # Watch until quit
  wot-discover watch --timeout 0`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		logging.Debug("stdout is not a terminal, falling back to list")
		return runList(cmd, args)
	}

	s := resolveSettings(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := s.options()
	if err != nil {
		return err
	}

	d, err := newCLIDiscoverer(opts...)
	if err != nil {
		return reportStartFailure(cmd.OutOrStdout(), s, err)
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.timeout > 0 {
		searchCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	stream, err := d.Stream(searchCtx)
	if err != nil {
		return reportStartFailure(cmd.OutOrStdout(), s, err)
	}
	defer stream.Close()

	outcomes := make(chan tui.Outcome)
	go forwardOutcomes(searchCtx, stream, outcomes)

	final, err := tui.RunWatch(ctx, outcomes, s.timeout)
	cancel()
	if err != nil {
		return err
	}

	if card, ok := final.Selected(); ok && final.ShowDetails {
		fmt.Fprintln(cmd.OutOrStdout(), card.Render(ui.GetTerminalWidth(), false))
	}
	return nil
}

// forwardOutcomes feeds stream results to the watch screen until the stream
// ends or ctx is canceled, then closes outcomes
func forwardOutcomes(ctx context.Context, stream *discovery.Stream[cliExtensions], outcomes chan<- tui.Outcome) {
	defer close(outcomes)

	for rec, err := range stream.All() {
		o := tui.Outcome{Err: err}
		if err != nil {
			logging.LogDiscoveryError(err)
		} else {
			logRecord(rec)
			card := cardFromRecord(rec)
			o.Card = &card
		}

		select {
		case outcomes <- o:
		case <-ctx.Done():
			return
		}
	}
}
