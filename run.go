package svgbundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"
)

// Bundle formats selectable with SVGBUNDLE_FORMAT.
const (
	FormatJS = "js"
	FormatGo = "go"
)

// Mode selects the artifact a run produces.
type Mode int

const (
	ModeJS Mode = iota
	ModeGo
	ModeSprite
	ModeIVG
)

// BundleMode maps a SVGBUNDLE_FORMAT value to a Mode.
func BundleMode(format string) (Mode, error) {
	switch format {
	case FormatJS, "":
		return ModeJS, nil
	case FormatGo:
		return ModeGo, nil
	}
	return 0, fmt.Errorf("unknown bundle format %q", format)
}

// DefaultOutput is the file name used when no output file is given.
func (m Mode) DefaultOutput() string {
	switch m {
	case ModeGo:
		return "icons.go"
	case ModeSprite:
		return "sprite.svg"
	case ModeIVG:
		return "icons_ivg.go"
	}
	return "icons.js"
}

func (m Mode) String() string {
	switch m {
	case ModeJS:
		return "js"
	case ModeGo:
		return "go"
	case ModeSprite:
		return "sprite"
	case ModeIVG:
		return "ivg"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// RunOptions describes one conversion.
type RunOptions struct {
	Mode     Mode
	InputDir string

	// Output is the file to write. An existing directory, or an empty
	// string for the working directory, gets Mode.DefaultOutput.
	Output string

	Config   Config
	Logger   *slog.Logger
	Progress func(done, total int)
}

// Run converts every icon of opts.InputDir and writes the result to the
// output file. A missing input directory or one without icons is an error and
// nothing is written. Files that fail individually are left out of the
// output; they show up in the returned Stats, not in the error.
func Run(opts RunOptions) (Stats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := opts.Config

	if err := CheckInputDir(opts.InputDir); err != nil {
		return Stats{}, err
	}
	fsys := os.DirFS(opts.InputDir)
	names, err := ListIcons(fsys)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", opts.InputDir, err)
	}

	p := NewProcessor(cfg.OptimizeOptions(), log)
	if cfg.BatchSize > 0 {
		p.BatchSize = cfg.BatchSize
	}
	p.Progress = opts.Progress
	log.Debug("processing icons", "dir", opts.InputDir, "files", len(names), "mode", opts.Mode, "steps", p.Optimizer.Steps())

	var (
		buf bytes.Buffer
		st  Stats
	)
	switch opts.Mode {
	case ModeJS:
		b := p.BuildBundle(fsys, names)
		st = b.Stats()
		err = WriteJS(&buf, b, JSOptions{GlobalName: cfg.GlobalName, LookupName: cfg.LookupName})
	case ModeGo:
		b := p.BuildBundle(fsys, names)
		st = b.Stats()
		err = WriteGo(&buf, b, GoOptions{
			Package:  cfg.Package,
			VarName:  GoIdent(cfg.VarPrefix, "icons"),
			FuncName: GoIdent(cfg.VarPrefix, "lookup"),
		})
	case ModeSprite:
		s := p.BuildSprite(fsys, names, SpriteOptions{IDPrefix: cfg.SpritePrefix})
		st = s.Stats()
		_, err = s.WriteTo(&buf)
	case ModeIVG:
		s := p.BuildIVG(fsys, names)
		st = s.Stats()
		err = WriteIVG(&buf, s, cfg.Package, cfg.VarPrefix)
	default:
		return Stats{}, fmt.Errorf("unknown mode %v", opts.Mode)
	}
	if err != nil {
		return st, err
	}

	out := outputPath(opts.Output, opts.Mode)
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return st, err
		}
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return st, err
	}
	log.Info("wrote output", "file", out, "bytes", buf.Len())
	return st, nil
}

func outputPath(out string, m Mode) string {
	if out == "" {
		return m.DefaultOutput()
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, m.DefaultOutput())
	}
	return out
}
