package timeline

import (
	"strconv"

	"github.com/sells-group/urbangrowth/internal/series"
)

// SliderSpec describes the year slider. It starts at the second year
// because the first has no growth to classify.
type SliderSpec struct {
	Min    int      `json:"min" yaml:"min"`
	Max    int      `json:"max" yaml:"max"`
	Step   int      `json:"step" yaml:"step"`
	Value  int      `json:"value" yaml:"value"`
	Labels []string `json:"labels" yaml:"labels"`
}

// Slider derives the slider range from the series, positioned on value.
func Slider(years series.Years, value int) SliderSpec {
	if len(years) == 0 {
		return SliderSpec{}
	}
	lo := years.First()
	if len(years) > 1 {
		lo = years[1]
	}
	spec := SliderSpec{Min: lo, Max: years.Last(), Step: years.Step(), Value: value}
	for _, y := range years {
		if y >= lo {
			spec.Labels = append(spec.Labels, strconv.Itoa(y))
		}
	}
	return spec
}
