package trend

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Linear maps a numeric domain onto a pixel range.
type Linear struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// Apply maps v into the range. A collapsed domain maps everything to the
// middle of the range.
func (s Linear) Apply(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - s.Domain[0]) / span
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Tick is one labelled axis position.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

var printer = message.NewPrinter(language.English)

// tickStep returns a 1/2/5 x 10^k step giving roughly count ticks over
// [lo, hi].
func tickStep(lo, hi float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	span := hi - lo
	if !(span > 0) {
		return 0
	}
	raw := span / float64(count)
	step := math.Pow(10, math.Floor(math.Log10(raw)))
	switch e := raw / step; {
	case e >= math.Sqrt(50):
		step *= 10
	case e >= math.Sqrt(10):
		step *= 5
	case e >= math.Sqrt(2):
		step *= 2
	}
	return step
}

// niceTicks returns ticks at round values inside the scale's domain. A
// collapsed domain gets a single tick.
func niceTicks(s Linear, count int) []Tick {
	lo, hi := s.Domain[0], s.Domain[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	step := tickStep(lo, hi, count)
	if step == 0 {
		return []Tick{{Value: lo, Pos: s.Apply(lo), Label: formatTick(lo, 1)}}
	}

	start := math.Ceil(lo / step)
	stop := math.Floor(hi / step)
	ticks := make([]Tick, 0, int(stop-start)+1)
	for i := start; i <= stop; i++ {
		v := i * step
		ticks = append(ticks, Tick{Value: v, Pos: s.Apply(v), Label: formatTick(v, step)})
	}
	return ticks
}

// formatTick groups thousands and shows as many decimals as the step needs.
func formatTick(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
