package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/studiowebux/snapgen/internal/client"
	"github.com/studiowebux/snapgen/internal/mock"
)

// MockOptions controls the local mock service
type MockOptions struct {
	ConfigPath string // YAML or JSON; empty uses the built-in routes
	InitPath   string // Write the built-in config here and exit
	Host       string
	Port       int
	Capacity   int
	Quiet      bool
}

// Mock serves the mock generation service until ctx is done, printing one
// line per request
func Mock(ctx context.Context, opts MockOptions, logger *slog.Logger, out io.Writer) error {
	if opts.InitPath != "" {
		if err := mock.SaveConfig(mock.DefaultConfig(), opts.InitPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote mock config to %s\n", opts.InitPath)
		return nil
	}

	cfg := mock.DefaultConfig()
	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if opts.ConfigPath != "" {
		cfg, err = mock.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		// bodyFile paths resolve next to the config
		workdir = filepath.Dir(opts.ConfigPath)
	}
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port > 0 {
		cfg.Port = opts.Port
	}
	if opts.Capacity > 0 {
		cfg.Capacity = opts.Capacity
	}

	server := mock.NewServer(cfg, workdir, logger)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	fmt.Fprintf(out, "Mock service listening on %s (%d routes)\n", server.GetAddress(), len(cfg.Routes))
	fmt.Fprintf(out, "Use it with: snapgen --url %s\n", server.GetAddress())

	lastID := ""
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Mock service stopped")
			return nil
		case <-server.NotifyChannel():
			if opts.Quiet {
				continue
			}
			lastID = printNewLogs(out, server.GetLogs(), lastID)
		}
	}
}

// printNewLogs prints entries after lastID and returns the newest ID.
// When lastID was trimmed from the buffer every entry is printed.
func printNewLogs(out io.Writer, logs []mock.RequestLog, lastID string) string {
	start := 0
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].ID == lastID {
			start = i + 1
			break
		}
	}

	for _, l := range logs[start:] {
		color := colorGreen
		if !client.IsSuccessStatus(l.Status) {
			color = colorRed
		}
		rule := l.MatchedRule
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(out, "%s %-6s %-24s %s%d%s %s (%s)\n",
			l.Timestamp.Format("15:04:05.000"),
			l.Method,
			l.Path,
			color, l.Status, colorReset,
			client.FormatDuration(l.Duration.Milliseconds()),
			rule)
	}

	if len(logs) == 0 {
		return lastID
	}
	return logs[len(logs)-1].ID
}
