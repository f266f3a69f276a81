package svgbundle

import (
	"fmt"
	"io/fs"

	"go.uber.org/multierr"
	"golang.org/x/exp/slog"
)

// DefaultBatchSize is the number of files processed between progress reports.
const DefaultBatchSize = 50

// Stats summarizes one run. Only successfully processed files count towards
// the byte totals.
type Stats struct {
	Files          int
	Processed      int
	Errors         int
	Collisions     int
	OriginalBytes  int64
	OptimizedBytes int64
}

// Processor turns icon files into optimized, keyed results. Files are
// handled one at a time in the order given; a failing file is logged,
// counted and left out, and the run goes on.
type Processor struct {
	Optimizer *Optimizer
	Encoder   DataURIEncoder
	Logger    *slog.Logger

	// BatchSize is how many files pass between Progress calls.
	BatchSize int

	// Progress, if set, is called after every batch and after the last file.
	Progress func(done, total int)
}

// NewProcessor returns a Processor with an optimizer built from opts.
func NewProcessor(opts OptimizeOptions, logger *slog.Logger) *Processor {
	return &Processor{
		Optimizer: NewOptimizer(opts),
		Encoder:   DataURIEncoder{Quote: '"'},
		Logger:    logger,
		BatchSize: DefaultBatchSize,
	}
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Processor) optimizer() *Optimizer {
	if p.Optimizer == nil {
		p.Optimizer = NewOptimizer(DefaultOptimizeOptions())
	}
	return p.Optimizer
}

// ordered is an insertion-ordered map. A repeated key keeps its first
// position and takes the newest value.
type ordered[V any] struct {
	keys []string
	vals map[string]V
}

func (o *ordered[V]) put(k string, v V) (replaced bool) {
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	if _, replaced = o.vals[k]; !replaced {
		o.keys = append(o.keys, k)
	}
	o.vals[k] = v
	return replaced
}

func (o *ordered[V]) len() int { return len(o.keys) }

// collect runs every named file of fsys through the optimizer and convert,
// storing the results under keyOf(name).
func collect[V any](p *Processor, fsys fs.FS, names []string, keyOf func(string) string,
	convert func(name, markup string) (V, error)) (*ordered[V], Stats, error) {

	log := p.logger()
	batch := p.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	out := &ordered[V]{}
	st := Stats{Files: len(names)}
	var errs error

	for i, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		var v V
		var markup string
		if err == nil {
			markup = p.optimizer().Optimize(string(raw))
			v, err = convert(name, markup)
		}

		if err != nil {
			log.Error("skipping icon", "file", name, "err", err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			st.Errors++
		} else {
			key := keyOf(name)
			if out.put(key, v) {
				log.Warn("duplicate key, later file wins", "key", key, "file", name)
				st.Collisions++
			}
			st.Processed++
			st.OriginalBytes += int64(len(raw))
			st.OptimizedBytes += int64(len(markup))
		}

		if p.Progress != nil && ((i+1)%batch == 0 || i+1 == len(names)) {
			p.Progress(i+1, len(names))
		}
	}
	return out, st, errs
}

// Bundle maps icon keys to data URIs. It is not modified after BuildBundle
// returns it.
type Bundle struct {
	entries *ordered[string]
	stats   Stats
	err     error
}

// BuildBundle optimizes and encodes the named files of fsys.
func (p *Processor) BuildBundle(fsys fs.FS, names []string) *Bundle {
	entries, st, err := collect(p, fsys, names, IconKey, func(_, markup string) (string, error) {
		return p.Encoder.Encode(markup), nil
	})
	return &Bundle{entries: entries, stats: st, err: err}
}

// Keys returns the icon keys in input order.
func (b *Bundle) Keys() []string {
	return append([]string(nil), b.entries.keys...)
}

// Len returns the number of icons.
func (b *Bundle) Len() int { return b.entries.len() }

// Lookup returns the data URI for a bare key or a path-like name such as
// "icons/smile.svg".
func (b *Bundle) Lookup(nameOrPath string) (string, bool) {
	uri, ok := b.entries.vals[IconKey(nameOrPath)]
	return uri, ok
}

func (b *Bundle) Stats() Stats { return b.stats }

// Err returns the combined per-file errors, or nil if every file was processed.
func (b *Bundle) Err() error { return b.err }
