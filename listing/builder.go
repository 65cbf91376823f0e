package listing

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"imgmeta"
)

// Builder extracts a page of files and maps them to entries.
type Builder struct {
	log     zerolog.Logger
	metrics *Metrics
	workers int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for per-file failures. The default
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}

// WithMetrics records every extraction on m.
func WithMetrics(m *Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// WithWorkers caps concurrent extractions; see imgmeta.Workers.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Entries builds one entry per name, in the order given. Names are joined to
// dir. Files with an extension no reader handles get only a name and
// modification time. The page never fails as a whole.
func (b *Builder) Entries(dir string, names []string) []Entry {
	return b.build(dir, names, true)
}

// Files builds one entry per path, in the order given. Unlike Entries, every
// path is extracted, so an unsupported or missing file gets an entry whose
// Error says why.
func (b *Builder) Files(paths []string) []Entry {
	return b.build("", paths, false)
}

func (b *Builder) build(dir string, names []string, skipUnsupported bool) []Entry {
	entries := make([]Entry, len(names))
	modTimes := make([]time.Time, len(names))

	var (
		paths []string
		index []int
	)
	for i, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil {
			modTimes[i] = info.ModTime()
		}
		if skipUnsupported && !imgmeta.Supported(name) {
			entries[i] = Entry{Name: name, LastModified: timePtr(modTimes[i])}
			continue
		}
		paths = append(paths, path)
		index = append(index, i)
	}

	results, err := imgmeta.ExtractAll(paths, imgmeta.Workers(b.workers))
	if err != nil {
		b.log.Error().Err(err).Str("dir", dir).Int("files", len(paths)).Msg("batch extraction aborted")
	}
	for j, res := range results {
		i := index[j]
		b.observe(res)
		entries[i] = FromResult(names[i], modTimes[i], res)
	}
	return entries
}

// Entry extracts a single file.
func (b *Builder) Entry(dir, name string) Entry {
	return b.Entries(dir, []string{name})[0]
}

func (b *Builder) observe(res imgmeta.Result) {
	if b.metrics != nil {
		b.metrics.Observe(res)
	}
	if res.Err != nil {
		b.log.Warn().
			Str("file_path", res.Path).
			Str("format", string(res.Format)).
			Str("kind", res.Kind().String()).
			Err(res.Err).
			Msg("metadata extraction failed")
		return
	}
	b.log.Debug().
		Str("file_path", res.Path).
		Str("format", string(res.Format)).
		Int64("file_size", res.FileSize()).
		Str("resolution", res.Resolution()).
		Msg("metadata extracted")
}
