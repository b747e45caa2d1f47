package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// levelPattern matches the level attribute written by slog's text handler.
var levelPattern = regexp.MustCompile(`\blevel=((?:DEBUG|INFO|WARN|ERROR)(?:[+-]\d+)?)`)

// LineLevel extracts the slog level of a log line.
func LineLevel(line string) (slog.Level, bool) {
	m := levelPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(m[1])); err != nil {
		return 0, false
	}
	return level, true
}

// Filter keeps lines at or above min. Lines without a level follow the
// decision made for the preceding record.
func Filter(lines []string, min slog.Level) []string {
	out := make([]string, 0, len(lines))
	keep := true
	for _, line := range lines {
		if level, ok := LineLevel(line); ok {
			keep = level >= min
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

// Palette styles the level token of a line.
type Palette struct {
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
}

// DefaultPalette follows the usual conventions: cyan debug, green info,
// yellow warnings and red errors.
func DefaultPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Palette{
		Debug: r.NewStyle().Foreground(lipgloss.Color("6")),
		Info:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Warn:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p Palette) style(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return p.Error
	case level >= slog.LevelWarn:
		return p.Warn
	case level >= slog.LevelInfo:
		return p.Info
	default:
		return p.Debug
	}
}

// Colorize styles the level token of line. Lines without one are
// returned unchanged.
func (p Palette) Colorize(line string) string {
	loc := levelPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	level, ok := LineLevel(line)
	if !ok {
		return line
	}
	start, end := loc[2], loc[3]
	return line[:start] + p.style(level).Render(line[start:end]) + line[end:]
}
