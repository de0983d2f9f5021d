package export

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/urbangrowth/internal/growth"
	"github.com/sells-group/urbangrowth/internal/legend"
	"github.com/sells-group/urbangrowth/internal/timeline"
	"github.com/sells-group/urbangrowth/internal/trend"
)

// Legends bundles everything the legend panels show.
type Legends struct {
	Size   legend.SizeLegend   `json:"size" yaml:"size"`
	Growth legend.GrowthLegend `json:"growth" yaml:"growth"`
	Slider timeline.SliderSpec `json:"slider" yaml:"slider"`
}

// LegendsOf returns the legends of a snapshot with the slider on year.
func LegendsOf(snap *timeline.Snapshot, year int) Legends {
	return Legends{
		Size:   snap.SizeLegend,
		Growth: legend.Growth(snap.Breaks, snap.Palette),
		Slider: timeline.Slider(snap.Years(), year),
	}
}

// Options controls an export run.
type Options struct {
	OutDir      string
	Concurrency int
	Format      Format
	// Trend, when set, also writes one SVG trend chart per feature.
	Trend *trend.Config
}

// Manifest lists what a run wrote.
type Manifest struct {
	Years  []int         `json:"years" yaml:"years"`
	Files  []string      `json:"files" yaml:"files"`
	Breaks growth.Breaks `json:"breaks" yaml:"breaks"`
}

// Run writes one GeoJSON layer and one frame snapshot per slider year, then
// the legends and a manifest. Frames are computed concurrently; they only
// read the snapshot.
func Run(ctx context.Context, snap *timeline.Snapshot, opts Options) (Manifest, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Manifest{}, eris.Wrap(err, "export: create out dir")
	}
	log := zap.L().With(zap.String("component", "export"), zap.String("out_dir", opts.OutDir))

	slider := timeline.Slider(snap.Years(), snap.DefaultYear)
	years := snap.Years().From(slider.Min)

	var (
		mu    sync.Mutex
		files []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, year := range years {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			written, err := writeYear(snap, year, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, written...)
			mu.Unlock()
			return nil
		})
	}
	if opts.Trend != nil {
		if err := os.MkdirAll(filepath.Join(opts.OutDir, "trends"), 0o755); err != nil {
			return Manifest{}, eris.Wrap(err, "export: create trends dir")
		}
		for _, f := range snap.Features.Features {
			g.Go(func() error {
				p, err := trend.Build(f, snap.Years(), *opts.Trend)
				if err != nil {
					log.Debug("no trend chart", zap.String("feature", f.ID), zap.Error(err))
					return nil
				}
				path := filepath.Join(opts.OutDir, "trends", trendFile(f.ID))
				if err := os.WriteFile(path, p.SVG(), 0o644); err != nil {
					return eris.Wrapf(err, "export: write %s", path)
				}
				mu.Lock()
				files = append(files, path)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Manifest{}, eris.Wrap(err, "export: frames")
	}

	legendsPath := filepath.Join(opts.OutDir, "legends."+opts.Format.Ext())
	if err := writeEncoded(legendsPath, LegendsOf(snap, snap.DefaultYear), opts.Format); err != nil {
		return Manifest{}, err
	}
	files = append(files, legendsPath)
	slices.Sort(files)

	m := Manifest{Years: years, Files: files, Breaks: snap.Breaks}
	if err := writeEncoded(filepath.Join(opts.OutDir, "manifest."+opts.Format.Ext()), m, opts.Format); err != nil {
		return Manifest{}, err
	}
	log.Info("export complete", zap.Int("years", len(years)), zap.Int("files", len(files)))
	return m, nil
}

func writeYear(snap *timeline.Snapshot, year int, opts Options) ([]string, error) {
	fr, err := timeline.Compute(snap, year)
	if err != nil {
		return nil, err
	}

	layer, err := MarshalFrameGeoJSON(fr)
	if err != nil {
		return nil, err
	}
	layerPath := filepath.Join(opts.OutDir, fmt.Sprintf("symbols-%d.geojson", year))
	if err := os.WriteFile(layerPath, layer, 0o644); err != nil {
		return nil, eris.Wrapf(err, "export: write %s", layerPath)
	}

	framePath := filepath.Join(opts.OutDir, fmt.Sprintf("frame-%d.%s", year, opts.Format.Ext()))
	if err := writeEncoded(framePath, fr, opts.Format); err != nil {
		return nil, err
	}
	return []string{layerPath, framePath}, nil
}

func writeEncoded(path string, v any, f Format) error {
	data, err := Marshal(v, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

// trendFile names a feature's chart file. Ids that needed escaping get a
// hash of the raw id appended, so "a/b" and "a_b" never share a file.
func trendFile(id string) string {
	name := safeName(id)
	if name == id {
		return name + ".svg"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("%s-%08x.svg", name, h.Sum32())
}

// safeName keeps feature ids usable as file names.
func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
