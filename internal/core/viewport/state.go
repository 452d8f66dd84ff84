package viewport

// Margins are document margins in viewport pixels.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// ViewState is everything the mapper needs to know about the view. It is a
// plain value; callers own it and pass it in.
type ViewState struct {
	Zoom           Zoom
	ScrollX        float64
	ScrollY        float64
	ViewportWidth  float64
	ViewportHeight float64
	Margins        Margins
	PageSpacing    float64
	CurrentPage    int

	// DeviceUnitsPerPoint converts points to pixels at custom zoom 1.
	// Non-positive values are treated as 1.
	DeviceUnitsPerPoint float64
}

func (s ViewState) deviceUnits() float64 {
	if s.DeviceUnitsPerPoint <= 0 {
		return 1
	}
	return s.DeviceUnitsPerPoint
}

func (s ViewState) spacing() float64 {
	return max(s.PageSpacing, 0)
}
