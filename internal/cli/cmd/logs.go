package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/dockgrid/internal/cli/styles"
)

const (
	defaultLogsLines = 50
	logFileName      = "dockgrid.log"
	followInterval   = 100 * time.Millisecond
)

var (
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the dockgrid log file",
	Long: `Print the end of the dockgrid log file.

Requires logging.enable_file_log in config.toml.

Examples:
  dockgrid logs            # last 50 lines
  dockgrid logs -n 200     # last 200 lines
  dockgrid logs -f         # follow new lines`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if a.Config.Logging.LogDir == "" {
		return errors.New("no log directory configured")
	}

	logPath := filepath.Join(a.Config.Logging.LogDir, logFileName)
	file, err := os.Open(logPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !a.Config.Logging.EnableFileLog {
			fmt.Println(a.Theme.Subtle.Render("File logging is disabled (logging.enable_file_log)."))
			return nil
		}
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	lines, err := lastLines(file, logsLines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(colorizeLogLine(line, a.Theme))
	}

	if !logsFollow {
		return nil
	}
	fmt.Println(a.Theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return followLines(ctx, file, func(line string) {
		fmt.Println(colorizeLogLine(line, a.Theme))
	})
}

// lastLines returns the last n lines of r.
func lastLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if len(ring) == n {
			copy(ring, ring[1:])
			ring = ring[:n-1]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return ring, nil
}

// followLines polls r for complete lines until ctx is done. r must already
// be positioned where reading should start.
func followLines(ctx context.Context, r io.Reader, emit func(string)) error {
	reader := bufio.NewReader(r)
	var pending strings.Builder
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	for {
		chunk, err := reader.ReadString('\n')
		pending.WriteString(chunk)
		switch {
		case err == nil:
			emit(strings.TrimRight(pending.String(), "\n"))
			pending.Reset()
			continue
		case !errors.Is(err, io.EOF):
			return fmt.Errorf("read log file: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

// colorizeLogLine renders a JSON log line compactly, or colors a console
// line by level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return formatJSONLogLine(entry, theme)
	}

	switch {
	case strings.Contains(line, " ERR "):
		return theme.ErrorStyle.Render(line)
	case strings.Contains(line, " WRN "):
		return theme.WarningStyle.Render(line)
	case strings.Contains(line, " DBG "), strings.Contains(line, " TRC "):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format("15:04:05")
	}

	var level string
	switch entry.Level {
	case "error", "fatal", "panic":
		level = theme.ErrorStyle.Render("ERR")
	case "warn":
		level = theme.WarningStyle.Render("WRN")
	case "info":
		level = theme.Highlight.Render("INF")
	case "debug":
		level = theme.Subtle.Render("DBG")
	case "trace":
		level = theme.Subtle.Render("TRC")
	default:
		level = entry.Level
	}

	msg := entry.Message
	if entry.Component != "" {
		msg = theme.Subtle.Render("["+entry.Component+"]") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), level, msg)
}
