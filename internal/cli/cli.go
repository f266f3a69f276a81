// Package cli is the command-line shell shared by the svgbundle commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/wrnrlr/svgbundle"
)

// DefaultInputDir is read when no input directory is given.
const DefaultInputDir = "svg"

// ModeFunc picks the run mode from the configuration.
type ModeFunc func(cfg svgbundle.Config) (svgbundle.Mode, error)

// Fixed returns a ModeFunc that always selects m.
func Fixed(m svgbundle.Mode) ModeFunc {
	return func(svgbundle.Config) (svgbundle.Mode, error) { return m, nil }
}

// Main runs a command with the positional arguments [inputDir] [output] and
// returns its exit status: 1 for usage, configuration or fatal run errors,
// 0 otherwise, even when some icons failed.
func Main(name string, mode ModeFunc, args []string, stderr io.Writer) int {
	fail := func(err error) int {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}

	if len(args) > 2 {
		fmt.Fprintf(stderr, "usage: %s [input-dir] [output]\n", name)
		return 1
	}
	input, output := DefaultInputDir, ""
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}

	cfg, err := svgbundle.LoadConfig()
	if err != nil {
		return fail(err)
	}
	m, err := mode(cfg)
	if err != nil {
		return fail(err)
	}
	logger, err := svgbundle.NewLogger(stderr, cfg)
	if err != nil {
		return fail(err)
	}

	var progress func(done, total int)
	if isTerminal(stderr) {
		progress = func(done, total int) {
			logger.Info("progress", "done", done, "total", total)
		}
	}

	st, err := svgbundle.Run(svgbundle.RunOptions{
		Mode:     m,
		InputDir: input,
		Output:   output,
		Config:   cfg,
		Logger:   logger,
		Progress: progress,
	})
	if err != nil {
		return fail(err)
	}
	svgbundle.LogSummary(logger, st)
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
