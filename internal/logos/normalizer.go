// Package logos prepares team logo assets and indexes them for plotting.
package logos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/naming"
)

const (
	defaultSize    = 50
	defaultWorkers = 4
)

// ErrUnreadableLogo wraps decode and read failures of a source image.
var ErrUnreadableLogo = errors.New("unreadable logo")

// Options controls a normalization run.
type Options struct {
	SourceDir string
	OutputDir string
	Size      int
	Canonical bool
	Workers   int
}

// Result summarizes a successful run.
type Result struct {
	Logos    []Entry
	Skipped  []Skipped
	Duration time.Duration
}

// Normalizer resizes every source logo to a square of Options.Size pixels.
type Normalizer struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewNormalizer applies defaults for a zero size or worker count.
func NewNormalizer(opts Options, logger *slog.Logger) *Normalizer {
	if opts.Size <= 0 {
		opts.Size = defaultSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Normalizer{opts: opts, logger: logger, now: time.Now}
}

// OutputDir is where normalized logos are written.
func (n *Normalizer) OutputDir() string {
	return n.opts.OutputDir
}

type job struct {
	source string
	output string
	key    string
}

// Normalize processes every .png in the source dir. The first file that cannot
// be read or decoded aborts the run; no manifest is written in that case.
func (n *Normalizer) Normalize(ctx context.Context) (Result, error) {
	start := n.now()
	if err := os.MkdirAll(n.opts.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	jobs, skipped, err := n.plan()
	if err != nil {
		return Result{}, err
	}
	for _, s := range skipped {
		logging.Warn(n.logger, "logo skipped", logging.FieldFile, s.Source, "reason", s.Reason)
	}

	entries := make([]Entry, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.opts.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := n.resize(j); err != nil {
				return err
			}
			entries[i] = Entry{Key: j.key, File: j.output, Source: j.source}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	n.prune(entries)
	m := Manifest{
		GeneratedAt: n.now().UTC(),
		SourceDir:   n.opts.SourceDir,
		Size:        n.opts.Size,
		Canonical:   n.opts.Canonical,
		Logos:       entries,
		Skipped:     skipped,
	}
	if err := writeManifest(n.opts.OutputDir, m); err != nil {
		return Result{}, fmt.Errorf("write manifest: %w", err)
	}

	res := Result{Logos: entries, Skipped: skipped, Duration: n.now().Sub(start)}
	logging.Info(n.logger, "logos normalized",
		logging.FieldCount, len(entries),
		logging.FieldDurationMS, res.Duration.Milliseconds(),
	)
	return res, nil
}

// plan lists source files in lexical order and resolves their output names.
// A later file whose output name is already taken is skipped.
func (n *Normalizer) plan() ([]job, []Skipped, error) {
	dirEntries, err := os.ReadDir(n.opts.SourceDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read logo source dir: %w", err)
	}

	var (
		jobs    []job
		skipped []Skipped
		claimed = make(map[string]string)
	)
	for _, e := range dirEntries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, logoExt) {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		key := naming.Key(stem)
		if key == "" {
			skipped = append(skipped, Skipped{Source: name, Reason: "name has no usable characters"})
			continue
		}

		output := name
		if n.opts.Canonical {
			output = key + logoExt
		}
		if prev, ok := claimed[output]; ok {
			skipped = append(skipped, Skipped{Source: name, Reason: "output " + output + " already produced by " + prev})
			continue
		}
		claimed[output] = name
		jobs = append(jobs, job{source: name, output: output, key: key})
	}
	return jobs, skipped, nil
}

func (n *Normalizer) resize(j job) error {
	f, err := os.Open(filepath.Join(n.opts.SourceDir, j.source))
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrUnreadableLogo, j.source, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrUnreadableLogo, j.source, err)
	}

	size := n.opts.Size
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return fmt.Errorf("encode %s: %w", j.output, err)
	}
	if err := writeFileAtomic(filepath.Join(n.opts.OutputDir, j.output), buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", j.output, err)
	}
	return nil
}

// prune removes outputs recorded by the previous manifest that this run no
// longer produces. Files the normalizer never wrote are left alone.
func (n *Normalizer) prune(current []Entry) {
	prev, err := ReadManifest(n.opts.OutputDir)
	if err != nil {
		return
	}
	keep := make(map[string]struct{}, len(current))
	for _, e := range current {
		keep[e.File] = struct{}{}
	}
	for _, e := range prev.Logos {
		if _, ok := keep[e.File]; ok {
			continue
		}
		if filepath.Base(e.File) != e.File {
			continue
		}
		if err := os.Remove(filepath.Join(n.opts.OutputDir, e.File)); err == nil {
			logging.Info(n.logger, "stale logo removed", logging.FieldFile, e.File)
		}
	}
}
