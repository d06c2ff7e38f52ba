package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/studiowebux/snapgen/internal/app"
	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/health"
	"github.com/studiowebux/snapgen/internal/history"
	"github.com/studiowebux/snapgen/internal/orchestrator"
	"github.com/studiowebux/snapgen/internal/results"
	"github.com/studiowebux/snapgen/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported --output value
var ErrUnknownFormat = errors.New("unknown output format (use text, json or yaml)")

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// GenerateOptions contains options for a one-shot generation. Nil fields
// fall back to the persisted preference; set fields are saved back.
type GenerateOptions struct {
	Form         types.TabID
	OutputFormat string
	Pick         bool // Choose one result interactively and copy it

	Length    *int
	Count     *int
	CharTypes []string

	WordCount  *int
	Capitalize *bool
	Dashes     *bool
	Digit      *bool
}

// Generate runs one submission through the same components as the TUI
func Generate(ctx context.Context, a *app.App, opts GenerateOptions, out io.Writer) error {
	if err := checkFormat(opts.OutputFormat); err != nil {
		return err
	}
	if opts.Form == "" {
		opts.Form = types.DefaultTab
	}

	// One poll so the count bound reflects current capacity. A failed poll
	// does not block generation.
	a.ApplyHealth(a.Health().Poll(ctx))

	if err := applyFlags(a, opts); err != nil {
		return err
	}

	outcome, err := a.Orchestrator().Run(ctx, a.Request(opts.Form))
	if err != nil {
		if errors.Is(err, orchestrator.ErrNoCharacterType) {
			return err
		}
		return errors.New(orchestrator.ErrorMessage(opts.Form, outcome.Err))
	}

	res := a.Results()
	if opts.Pick {
		if !isInteractive() {
			return fmt.Errorf("--pick needs an interactive terminal")
		}
		return pickAndCopy(res)
	}

	output, err := formatResult(types.GenerationResult{Title: res.Title(), Strings: res.Strings()}, opts.OutputFormat)
	if err != nil {
		return err
	}
	emit(out, output, opts.OutputFormat)
	return nil
}

// applyFlags pushes flag values through the control pairs and flag setters,
// which clamp and persist them
func applyFlags(a *app.App, opts GenerateOptions) error {
	if opts.Length != nil {
		a.Length().Set(*opts.Length)
	}
	if opts.Count != nil {
		a.Count().Set(*opts.Count)
	}
	if opts.WordCount != nil {
		a.WordCount().Set(*opts.WordCount)
	}
	if opts.CharTypes != nil {
		set := make([]types.CharType, 0, len(opts.CharTypes))
		for _, raw := range opts.CharTypes {
			c, ok := types.ParseCharType(raw)
			if !ok {
				return fmt.Errorf("unknown character type %q (use uppercase, lowercase, numbers, special)", raw)
			}
			set = append(set, c)
		}
		a.SetCharTypes(set)
	}
	if opts.Capitalize != nil {
		a.SetCapitalize(*opts.Capitalize)
	}
	if opts.Dashes != nil {
		a.SetDashes(*opts.Dashes)
	}
	if opts.Digit != nil {
		a.SetDigit(*opts.Digit)
	}
	return nil
}

// Quick calls one of the fixed-parameter endpoints
func Quick(ctx context.Context, c *client.Client, form types.TabID, format string, out io.Writer) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	var (
		value string
		err   error
	)
	if form == types.TabPassphrase {
		value, err = c.QuickPassphrase(ctx)
	} else {
		value, err = c.QuickString(ctx)
	}
	if err != nil {
		return errors.New(orchestrator.ErrorMessage(form, err))
	}

	output, err := formatResult(types.GenerationResult{Title: orchestrator.Title(form), Strings: []string{value}}, format)
	if err != nil {
		return err
	}
	emit(out, output, format)
	return nil
}

// HealthOptions controls the health command
type HealthOptions struct {
	Format   string
	Watch    bool
	Interval time.Duration
}

// Health prints the service status once, or on every poll with Watch
func Health(ctx context.Context, c *client.Client, opts HealthOptions, out io.Writer) error {
	if err := checkFormat(opts.Format); err != nil {
		return err
	}

	monitor := health.New(c, health.Options{Interval: opts.Interval})

	if !opts.Watch {
		r := monitor.Poll(ctx)
		monitor.Apply(r)
		if err := printHealth(out, monitor, r, opts.Format); err != nil {
			return err
		}
		if r.Err != nil {
			if msg := client.Categorize(r.Err); msg != "" {
				return errors.New(msg)
			}
			return r.Err
		}
		return nil
	}

	resultsCh := make(chan health.Result)
	monitor.Start(ctx, func(r health.Result) {
		select {
		case resultsCh <- r:
		case <-ctx.Done():
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-resultsCh:
			// Applied in completion order, like the TUI
			monitor.Apply(r)
			if err := printHealth(out, monitor, r, opts.Format); err != nil {
				return err
			}
		}
	}
}

type healthReport struct {
	Status    string `json:"status" yaml:"status"`
	State     string `json:"state" yaml:"state"`
	Available int    `json:"available_snapshots" yaml:"available_snapshots"`
	Total     int    `json:"total_snapshots" yaml:"total_snapshots"`
	Used      int    `json:"used_snapshots" yaml:"used_snapshots"`
	Message   string `json:"message" yaml:"message"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

func printHealth(out io.Writer, monitor *health.Monitor, r health.Result, format string) error {
	last := monitor.Last()
	display := monitor.Status()

	report := healthReport{
		Status:    last.Status,
		State:     last.State.String(),
		Available: last.AvailableCapacity,
		Total:     last.TotalSnapshots,
		Used:      last.UsedSnapshots,
		Message:   display.Text,
	}
	if r.Err != nil {
		report.Error = client.Categorize(r.Err)
		if report.Error == "" {
			report.Error = r.Err.Error()
		}
	}

	switch format {
	case FormatJSON:
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "---\n%s", data)
		return nil
	}

	color := colorYellow
	switch display.Class {
	case health.ClassHealthy:
		color = colorGreen
	case health.ClassUnhealthy:
		color = colorRed
	}
	line := fmt.Sprintf("%s%s%s", color, display.Text, colorReset)
	if last.TotalSnapshots > 0 {
		line += fmt.Sprintf(" (used %d of %d)", last.UsedSnapshots, last.TotalSnapshots)
	}
	fmt.Fprintf(out, "%s  %s\n", r.CompletedAt.Format("15:04:05.000"), line)
	return nil
}

// HistoryOptions controls the history command
type HistoryOptions struct {
	Format string
	Kind   string // Empty lists every kind
	Limit  int
	Clear  bool
}

// History lists or clears recorded submissions
func History(h *history.Manager, opts HistoryOptions, out io.Writer) error {
	if h == nil {
		return fmt.Errorf("history is not available (ephemeral mode or database error)")
	}
	if err := checkFormat(opts.Format); err != nil {
		return err
	}

	if opts.Clear {
		count, err := h.GetCount()
		if err != nil {
			return err
		}
		if err := h.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %d history entries\n", count)
		return nil
	}

	var (
		entries []history.Entry
		err     error
	)
	if opts.Kind != "" {
		kind, ok := types.ParseTabID(opts.Kind)
		if !ok {
			return fmt.Errorf("unknown kind %q (use strings or passphrase)", opts.Kind)
		}
		entries, err = h.LoadKind(kind, opts.Limit)
	} else {
		entries, err = h.Load(opts.Limit)
	}
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		emit(out, string(data)+"\n", FormatJSON)
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		emit(out, string(data), FormatYAML)
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history yet")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tKIND\tSTATUS\tRESULTS\tDURATION\tPARAMS")
	for _, e := range entries {
		status := e.Status
		if e.Error != "" {
			status += ": " + e.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Kind,
			status,
			e.ResultCount,
			client.FormatDuration(e.DurationMs),
			e.Params)
	}
	return tw.Flush()
}

func checkFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// formatResult formats generated values based on the output format
func formatResult(result types.GenerationResult, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		// One value per line so the output pipes cleanly
		if len(result.Strings) == 0 {
			return "", nil
		}
		return strings.Join(result.Strings, "\n") + "\n", nil
	}
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

// copied reports a successful copy on stderr so stdout stays clean
func copied(res *results.Renderer, row int) {
	fmt.Fprintf(os.Stderr, "%s%s%s %s\n", colorGreen, results.LabelCopied, colorReset, res.Strings()[row])
}
