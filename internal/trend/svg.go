package trend

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

// SVG serializes the panel as a standalone SVG document.
func (p Panel) SVG() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`,
		formatNum(p.Width), formatNum(p.Height))
	fmt.Fprintf(&b, `<title>%s</title>`, html.EscapeString(p.Title))
	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`, formatNum(p.Margin.Left), formatNum(p.Margin.Top))

	fmt.Fprintf(&b, `<path class="line" d="%s" fill="none" stroke="currentColor"`, p.D)
	if len(p.DashArray) > 0 {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, dashAttr(p.DashArray))
	}
	b.WriteString(`/>`)

	// X axis with rotated year labels.
	fmt.Fprintf(&b, `<g class="x axis" transform="translate(0,%s)">`, formatNum(p.InnerHeight))
	fmt.Fprintf(&b, `<path class="domain" d="M0,6V0H%sV6" fill="none" stroke="currentColor"/>`, formatNum(p.InnerWidth))
	for _, t := range p.XTicks {
		fmt.Fprintf(&b, `<g class="tick" transform="translate(%s,0)">`, formatNum(t.Pos))
		b.WriteString(`<line y2="6" stroke="currentColor"/>`)
		fmt.Fprintf(&b, `<text y="9" dx="-.8em" dy=".15em" transform="rotate(-65)" text-anchor="end">%s</text>`,
			html.EscapeString(t.Label))
		b.WriteString(`</g>`)
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="y axis">`)
	fmt.Fprintf(&b, `<path class="domain" d="M0,%sV0" fill="none" stroke="currentColor"/>`, formatNum(p.InnerHeight))
	for _, t := range p.YTicks {
		fmt.Fprintf(&b, `<g class="tick" transform="translate(0,%s)">`, formatNum(t.Pos))
		b.WriteString(`<line x2="-6" stroke="currentColor"/>`)
		fmt.Fprintf(&b, `<text x="-9" dy="0.32em" text-anchor="end">%s</text>`, html.EscapeString(t.Label))
		b.WriteString(`</g>`)
	}
	b.WriteString(`</g>`)

	b.WriteString(`</g></svg>`)
	return b.Bytes()
}

func dashAttr(dashes []float64) string {
	parts := make([]string, len(dashes))
	for i, d := range dashes {
		parts[i] = formatNum(d)
	}
	return strings.Join(parts, ", ")
}
