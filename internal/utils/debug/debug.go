// Package debug prints the sweep log file for --debug.
package debug

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/babarot/sweep/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var (
	errLoggingDisabled = errors.New("logging is not enabled in config")
	errNoLogFile       = errors.New("no log file exists yet: try running some commands first")
)

var isTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }

// Options selects what Logs prints
type Options struct {
	Path string
	// Live keeps printing lines as they are appended
	Live bool
	// Lines limits the output to the last n lines; 0 prints the whole file
	Lines int
}

// Logs writes the log file to w. With Live set it prints the last Lines
// lines and then follows the file while stdout is a terminal.
func Logs(w io.Writer, cfg config.LoggingConfig, opts Options) error {
	if !cfg.Enabled {
		if _, err := os.Stat(opts.Path); err != nil || opts.Live {
			return fmt.Errorf("%w: enable logging to create log files", errLoggingDisabled)
		}
	}

	f, err := os.Open(opts.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return errNoLogFile
	}
	if err != nil {
		return err
	}
	defer f.Close()

	lines, offset, err := lastLines(f, opts.Lines)
	if err != nil {
		return err
	}
	if !opts.Live || opts.Lines > 0 {
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
	if !opts.Live {
		return nil
	}
	return follow(w, opts.Path, offset)
}

// lastLines reads f to the end and returns its last n lines (all when n is 0)
// with the offset where reading stopped.
func lastLines(f *os.File, n int) ([]string, int64, error) {
	var (
		lines  []string
		offset int64
	)
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		offset += int64(len(line))
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			if n > 0 && len(lines) > n {
				lines = lines[1:]
			}
		}
		if errors.Is(err, io.EOF) {
			return lines, offset, nil
		}
		if err != nil {
			return nil, 0, err
		}
	}
}

func follow(w io.Writer, path string, offset int64) error {
	shouldFollow := isTerminal()
	t, err := tail.TailFile(path, tail.Config{
		ReOpen: shouldFollow,
		Follow: shouldFollow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
		Location: &tail.SeekInfo{
			Offset: offset,
			Whence: io.SeekStart,
		},
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()
	slog.Info("live tail started", "path", path, "offset", offset)

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Fprintln(w, line.Text)
	}
	return nil
}
