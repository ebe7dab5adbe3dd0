// Package corpus loads a directory of weather configuration files and writes
// the combined output the game reads.
package corpus

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/diff"
	"github.com/KimNorgaard/go-weathercfg/internal/logging"
)

// DefaultPattern selects the files of a corpus directory.
const DefaultPattern = "*.cfg"

var bom = []byte("\xef\xbb\xbf")

// Options controls how a corpus is read.
type Options struct {
	// Pattern is a doublestar glob matched against slash-separated paths
	// relative to the corpus directory. Empty means DefaultPattern.
	Pattern string
	// Workers bounds the number of files parsed at once. Zero means
	// GOMAXPROCS.
	Workers int
	// Logger receives parser warnings. Nil means the global logger.
	Logger *zerolog.Logger
	// Parse is applied to every file in addition to Filename and the logger.
	Parse []weathercfg.Option
}

func (o Options) pattern() string {
	if o.Pattern == "" {
		return DefaultPattern
	}
	return o.Pattern
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return logging.Logger
	}
	return *o.Logger
}

func (o Options) parseOptions(name string) []weathercfg.Option {
	return slices.Concat(o.Parse, []weathercfg.Option{
		weathercfg.Filename(name),
		weathercfg.WithLogger(o.logger()),
	})
}

// Files returns the paths below dir matching pattern, relative to dir and
// sorted.
func Files(fsys afero.Fs, dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("weathercfg: invalid corpus pattern %q", pattern)
	}
	var names []string
	err := afero.Walk(fsys, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if ok {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("weathercfg: listing corpus %s: %w", dir, err)
	}
	slices.Sort(names)
	return names, nil
}

// Load parses every matching file of dir and returns the configs in file
// name order. The first parse or read error cancels the remaining work.
func Load(ctx context.Context, fsys afero.Fs, dir string, opts Options) ([]*ast.Config, error) {
	names, err := Files(fsys, dir, opts.pattern())
	if err != nil {
		return nil, err
	}

	cfgs := make([]*ast.Config, len(names))
	err = each(ctx, fsys, dir, names, opts.workers(), func(i int, data []byte) error {
		cfg, err := weathercfg.Parse(data, opts.parseOptions(names[i])...)
		if err != nil {
			return err
		}
		cfgs[i] = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("dir", dir).Int("files", len(cfgs)).Msg("corpus loaded")
	return cfgs, nil
}

// Mismatch is a file that does not survive a parse and render unchanged.
type Mismatch struct {
	File string
	// Err is set when the file does not parse or render.
	Err  error
	Diff diff.Result
}

// Verify parses and re-renders every matching file of dir and returns the
// files whose rendering differs from their source. Sources are compared
// without their byte order mark, with LF line endings and without trailing
// newlines.
func Verify(ctx context.Context, fsys afero.Fs, dir string, opts Options, render ...weathercfg.Option) ([]Mismatch, error) {
	names, err := Files(fsys, dir, opts.pattern())
	if err != nil {
		return nil, err
	}

	results := make([]*Mismatch, len(names))
	err = each(ctx, fsys, dir, names, opts.workers(), func(i int, data []byte) error {
		m := &Mismatch{File: names[i]}
		cfg, err := weathercfg.Parse(data, opts.parseOptions(names[i])...)
		if err != nil {
			m.Err = err
			results[i] = m
			return nil
		}
		text, err := weathercfg.Render(cfg, render...)
		if err != nil {
			m.Err = err
			results[i] = m
			return nil
		}
		if m.Diff = diff.Compute(Normalize(data), text); m.Diff.Changed() {
			results[i] = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []Mismatch
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func each(ctx context.Context, fsys afero.Fs, dir string, names []string, workers int, fn func(i int, data []byte) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(fsys, path.Join(filepath.ToSlash(dir), name))
			if err != nil {
				return fmt.Errorf("weathercfg: reading %s: %w", name, err)
			}
			return fn(i, data)
		})
	}
	return g.Wait()
}

// Normalize returns source text the way the renderer would write it: no byte
// order mark, LF line endings and no trailing newline.
func Normalize(data []byte) string {
	data = bytes.TrimPrefix(data, bom)
	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}

// Encode converts rendered text to the on-disk form: a UTF-8 byte order mark,
// CRLF line endings and one trailing CRLF.
func Encode(text string) []byte {
	var b bytes.Buffer
	b.Grow(len(bom) + len(text) + strings.Count(text, "\n") + 2)
	b.Write(bom)
	b.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}

// WriteCombined writes text to name in the on-disk form, creating parent
// directories as needed.
func WriteCombined(fsys afero.Fs, name, text string) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("weathercfg: creating %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, name, Encode(text), 0o644); err != nil {
		return fmt.Errorf("weathercfg: writing %s: %w", name, err)
	}
	return nil
}
