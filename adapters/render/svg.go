// Package render turns wedge geometry into viewable artifacts: a standalone
// SVG image and a go-echarts HTML page. The core emits plain WedgeSpec data;
// everything pixel-shaped lives here.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"defect-cost/core/chart"
)

const (
	svgSize     = 640.0
	outerRadius = 240.0
	innerFrac   = 0.6
	fullCircle  = 2*math.Pi - 1e-9
)

// WriteSVG renders a single-period layout as an SVG document
func WriteSVG(w io.Writer, layout *chart.Layout, title string) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		svgSize, svgSize, svgSize, svgSize))
	writeTitle(&b, svgSize/2, title)
	writePeriod(&b, svgSize/2, svgSize/2+20, layout)
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDualSVG renders previous and current layouts side by side,
// previous on the left.
func WriteDualSVG(w io.Writer, current, previous *chart.Layout, currentTitle, previousTitle string) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		svgSize*2, svgSize, svgSize*2, svgSize))

	writeTitle(&b, svgSize/2, previousTitle)
	writePeriod(&b, svgSize/2, svgSize/2+20, previous)

	writeTitle(&b, svgSize*1.5, currentTitle)
	writePeriod(&b, svgSize*1.5, svgSize/2+20, current)

	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTitle(b *strings.Builder, cx float64, title string) {
	if title == "" {
		return
	}
	b.WriteString(fmt.Sprintf(
		`<text x="%.1f" y="28" text-anchor="middle" font-size="18" font-weight="bold">%s</text>`+"\n",
		cx, escape(title)))
}

func writePeriod(b *strings.Builder, cx, cy float64, layout *chart.Layout) {
	if layout == nil || layout.Empty {
		b.WriteString(fmt.Sprintf(
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16" fill="gray">no data</text>`+"\n",
			cx, cy))
		return
	}

	inner := outerRadius * innerFrac
	for _, wedge := range layout.Outer {
		b.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-opacity="0.7" stroke="white" stroke-width="1"/>`+"\n",
			annularPath(cx, cy, inner, outerRadius, wedge.StartAngle, wedge.EndAngle), wedge.Color))
	}
	for _, wedge := range layout.Inner {
		b.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" stroke="white" stroke-width="1"/>`+"\n",
			sectorPath(cx, cy, inner, wedge.StartAngle, wedge.EndAngle), wedge.Color))
	}

	// Labels after all wedges so they stay on top.
	for _, wedge := range layout.Outer {
		mid := (wedge.StartAngle + wedge.EndAngle) / 2
		lx, ly := point(cx, cy, (outerRadius+inner)/2*1.25, mid)
		anchor := "start"
		if math.Cos(mid) < 0 {
			anchor = "end"
		}
		b.WriteString(fmt.Sprintf(
			`<text x="%.1f" y="%.1f" text-anchor="%s" font-size="11">%s</text>`+"\n",
			lx, ly, anchor, escape(wedge.DisplayText)))
	}
	for _, wedge := range layout.Inner {
		mid := (wedge.StartAngle + wedge.EndAngle) / 2
		lx, ly := point(cx, cy, inner*0.5, mid)
		b.WriteString(fmt.Sprintf(
			`<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" font-weight="bold" fill="white">%s</text>`+"\n",
			lx, ly, escape(wedge.DisplayText)))
	}
}

// point maps a polar coordinate to SVG space. SVG y grows downward, so the
// y component is flipped to keep angles counterclockwise.
func point(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy - r*math.Sin(angle)
}

// annularPath builds an annular sector path between two radii. A span
// covering the full circle degenerates to two concentric rings.
func annularPath(cx, cy, rInner, rOuter, a1, a2 float64) string {
	if a2-a1 >= fullCircle {
		// Opposite windings punch the hole under the nonzero fill rule.
		return ringPath(cx, cy, rOuter, 0) + " " + ringPath(cx, cy, rInner, 1)
	}

	large := 0
	if a2-a1 > math.Pi {
		large = 1
	}
	x1, y1 := point(cx, cy, rOuter, a1)
	x2, y2 := point(cx, cy, rOuter, a2)
	x3, y3 := point(cx, cy, rInner, a2)
	x4, y4 := point(cx, cy, rInner, a1)

	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		x1, y1, rOuter, rOuter, large, x2, y2,
		x3, y3, rInner, rInner, large, x4, y4)
}

// sectorPath builds a filled pie sector path
func sectorPath(cx, cy, r, a1, a2 float64) string {
	if a2-a1 >= fullCircle {
		return ringPath(cx, cy, r, 0)
	}

	large := 0
	if a2-a1 > math.Pi {
		large = 1
	}
	x1, y1 := point(cx, cy, r, a1)
	x2, y2 := point(cx, cy, r, a2)

	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		cx, cy, x1, y1, r, r, large, x2, y2)
}

// ringPath draws a full circle as two half arcs with the given sweep
// direction.
func ringPath(cx, cy, r float64, sweep int) string {
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 1 %d %.2f %.2f A %.2f %.2f 0 1 %d %.2f %.2f Z",
		cx+r, cy, r, r, sweep, cx-r, cy, r, r, sweep, cx+r, cy)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
