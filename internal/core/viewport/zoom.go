package viewport

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoomKind identifies how the page scale is derived.
type ZoomKind int

const (
	ZoomFitWidth ZoomKind = iota
	ZoomFitPage
	ZoomCustom
)

func (k ZoomKind) String() string {
	switch k {
	case ZoomFitWidth:
		return "fit-width"
	case ZoomFitPage:
		return "fit-page"
	case ZoomCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Zoom is the zoom mode of a view. Only custom zoom carries a factor.
type Zoom struct {
	kind   ZoomKind
	factor float64
}

// FitWidth scales every page to the available viewport width.
func FitWidth() Zoom { return Zoom{kind: ZoomFitWidth} }

// FitPage scales every page to fit entirely inside the viewport.
func FitPage() Zoom { return Zoom{kind: ZoomFitPage} }

// Custom scales every page by factor times the device units per point.
func Custom(factor float64) Zoom { return Zoom{kind: ZoomCustom, factor: factor} }

// Kind returns the zoom mode.
func (z Zoom) Kind() ZoomKind { return z.kind }

// Factor returns the custom zoom factor, or 1 for fitted modes.
func (z Zoom) Factor() float64 {
	if z.kind != ZoomCustom {
		return 1
	}
	return z.factor
}

func (z Zoom) String() string {
	if z.kind == ZoomCustom {
		return fmt.Sprintf("%.0f%%", z.factor*100)
	}
	return z.kind.String()
}

// ParseZoom parses "fit-width", "fit-page", "custom" (factor 1), a bare
// factor such as "1.5", or a percentage such as "150%".
func ParseZoom(s string) (Zoom, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "fit-width", "width":
		return FitWidth(), nil
	case "fit-page", "page":
		return FitPage(), nil
	case "custom":
		return Custom(1), nil
	}

	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return Zoom{}, fmt.Errorf("invalid zoom %q", s)
	}
	if pct {
		f /= 100
	}
	if f <= 0 {
		return Zoom{}, fmt.Errorf("zoom factor must be positive, got %v", f)
	}
	return Custom(f), nil
}
