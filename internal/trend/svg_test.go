package trend

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/urbangrowth/internal/model"
)

func TestPanel_SVG(t *testing.T) {
	p, err := Build(delhi(), years, DefaultConfig())
	require.NoError(t, err)

	out := string(p.SVG())
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="230">`))
	assert.Contains(t, out, `<title>Delhi, India</title>`)
	assert.Contains(t, out, `translate(60,10)`)
	assert.Contains(t, out, `stroke-dasharray="`+dashAttr(p.DashArray)+`"`)
	assert.Contains(t, out, `d="`+p.D+`"`)
	assert.Contains(t, out, `>2025</text>`)
	assert.Equal(t, len(years), strings.Count(out, `rotate(-65)`))

	// Well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestPanel_SVG_EscapesTitle(t *testing.T) {
	f := model.NewFeature("x", "Saint-Denis <Réunion>", "France & DOM", 0, 0, map[int]float64{1950: 1, 2000: 2})
	p, err := Build(f, years, DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(p.SVG()), "Saint-Denis &lt;Réunion&gt;, France &amp; DOM")
}

func TestDashAttr(t *testing.T) {
	assert.Equal(t, "277, 2, 2, 0.5", dashAttr([]float64{277, 2, 2, 0.5}))
}
