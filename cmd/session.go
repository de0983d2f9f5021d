package main

import (
	"context"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/config"
	"github.com/sells-group/urbangrowth/internal/export"
	"github.com/sells-group/urbangrowth/internal/fetcher"
	"github.com/sells-group/urbangrowth/internal/growth"
	"github.com/sells-group/urbangrowth/internal/timeline"
	"github.com/sells-group/urbangrowth/internal/trend"
)

// loadSnapshot fetches the collection and derives the session snapshot. A
// fetch failure ends the command; nothing is rendered.
func loadSnapshot(ctx context.Context, c *config.Config) (*timeline.Snapshot, error) {
	coll, err := fetcher.Load(ctx, c.Data.Source, fetcherOptions(c))
	if err != nil {
		return nil, eris.Wrap(err, "load features")
	}
	snap, err := timeline.NewSnapshot(coll, timelineSettings(c))
	if err != nil {
		return nil, err
	}
	zap.L().Info("snapshot ready",
		zap.Int("features", coll.Len()),
		zap.Int("reference_year", snap.Breaks.ReferenceYear),
		zap.Float64s("breaks", snap.Breaks.Values[:]),
		zap.Bool("degenerate", snap.Breaks.Degenerate),
	)
	return snap, nil
}

func fetcherOptions(c *config.Config) fetcher.Options {
	return fetcher.Options{
		AttributePrefix: c.Data.AttributePrefix,
		IDKey:           c.Data.IDKey,
		NameKey:         c.Data.NameKey,
		CountryKey:      c.Data.CountryKey,
		HTTP: fetcher.HTTPOptions{
			Timeout:           time.Duration(c.Data.TimeoutSecs) * time.Second,
			RequestsPerSecond: c.Data.RequestsPerSecond,
		},
	}
}

func timelineSettings(c *config.Config) timeline.Settings {
	return timeline.Settings{
		Start:       c.Data.StartYear,
		End:         c.Data.EndYear,
		Step:        c.Data.Step,
		DefaultYear: c.Map.DefaultYear,
		ScaleFactor: c.Map.ScaleFactor,
		Multiplier:  c.Map.RadiusMultiplier,
		LegendMin:   c.Map.LegendMin,
		UnitDivisor: c.Data.UnitDivisor,
		Palette: growth.Palette{
			Decline:     c.Palette.Decline,
			BelowMedian: c.Palette.BelowMedian,
			AboveMedian: c.Palette.AboveMedian,
		},
		Style: timeline.Style{
			Stroke:       c.Map.Stroke,
			Weight:       c.Map.Weight,
			FillOpacity:  c.Map.FillOpacity,
			HoverOpacity: c.Map.HoverOpacity,
		},
	}
}

func trendConfig(c *config.Config) trend.Config {
	return trend.Config{
		Width:  c.Trend.Width,
		Height: c.Trend.Height,
		Margin: trend.Margin{
			Top:    c.Trend.Margin.Top,
			Right:  c.Trend.Margin.Right,
			Bottom: c.Trend.Margin.Bottom,
			Left:   c.Trend.Margin.Left,
		},
		DashStart:  c.Trend.DashStart,
		DashEnd:    c.Trend.DashEnd,
		DashLength: c.Trend.DashLength,
		YTicks:     c.Trend.YTicks,
	}
}

func controllerOptions(c *config.Config) timeline.Options {
	return timeline.Options{
		ShowTrend:        c.Map.ShowTrend,
		HideTrendOnLeave: c.Map.HideTrendOnLeave,
		Trend:            trendConfig(c),
	}
}

// writeFormatted encodes v to w, falling back to the configured export
// format when flagFormat is empty.
func writeFormatted(w io.Writer, v any, flagFormat string) error {
	name := flagFormat
	if name == "" {
		name = cfg.Export.Format
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	return export.Encode(w, v, f)
}
