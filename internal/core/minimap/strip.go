package minimap

import "image/color"

// Row is one terminal row of the strip covering [Start, End) of the
// document height. The last row also covers 1.0.
type Row struct {
	Start float64
	End   float64

	InPage     bool // overlaps a page band
	PageStart  bool // a page after the first begins in this row
	InViewport bool

	Markers int
	Color   color.Color // color of the last marker in the row
	Label   string      // label of the last marker in the row
}

// Strip rasterizes the projector state into rows.
func (p *Projector) Strip(rows int) []Row {
	if rows <= 0 {
		return nil
	}

	out := make([]Row, rows)
	step := 1 / float64(rows)
	for i := range out {
		out[i].Start = float64(i) * step
		out[i].End = float64(i+1) * step
	}
	out[rows-1].End = 1

	for i := range out {
		r := &out[i]
		last := i == rows-1

		for bi, b := range p.bands {
			if b.Start < r.End && (b.End > r.Start || (last && b.End >= r.Start)) {
				r.InPage = true
			}
			if bi > 0 && inRow(b.Start, r, last) {
				r.PageStart = true
			}
		}

		if v := p.viewport; v.Valid && v.Start < r.End && v.End > r.Start {
			r.InViewport = true
		}
	}

	for _, m := range p.markers {
		i := min(int(m.Position*float64(rows)), rows-1)
		i = max(i, 0)
		out[i].Markers++
		out[i].Color = m.Color
		out[i].Label = m.Label
	}

	return out
}

func inRow(y float64, r *Row, last bool) bool {
	if last {
		return y >= r.Start && y <= r.End
	}
	return y >= r.Start && y < r.End
}
