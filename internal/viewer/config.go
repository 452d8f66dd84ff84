package viewer

import (
	"fmt"

	"github.com/hay-kot/pagelens/internal/core/config"
	"github.com/hay-kot/pagelens/internal/core/styles"
	"github.com/hay-kot/pagelens/internal/core/viewport"
	"github.com/hay-kot/pagelens/internal/docsource/textdoc"
)

// OptionsFromConfig builds session options from cfg. Viewport size is left
// at zero; the shell sets it once it knows its own size.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	zoom, err := ZoomFromConfig(cfg.View)
	if err != nil {
		return Options{}, err
	}

	highlight, err := styles.ParseColor(cfg.Search.HighlightColor)
	if err != nil {
		return Options{}, fmt.Errorf("search.highlight_color: %w", err)
	}
	batch, err := styles.ParseColor(cfg.Search.BatchColor)
	if err != nil {
		return Options{}, fmt.Errorf("search.batch_color: %w", err)
	}

	m := cfg.View.Margins
	return Options{
		View: viewport.ViewState{
			Zoom:                zoom,
			Margins:             viewport.Margins{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom},
			PageSpacing:         cfg.View.PageSpacing,
			DeviceUnitsPerPoint: cfg.View.DeviceUnitsPerPoint,
		},
		LayoutSpacing:  cfg.Minimap.PageSpacing,
		Debounce:       cfg.Search.Debounce,
		LiveMinimap:    cfg.Search.LiveMinimapEnabled(),
		HighlightColor: highlight,
		BatchColor:     batch,
		HoverThreshold: cfg.Minimap.HoverThreshold,
		ClickThreshold: cfg.Minimap.ClickThreshold,
	}, nil
}

// ZoomFromConfig converts the view.zoom and view.zoom_factor settings.
func ZoomFromConfig(v config.ViewConfig) (viewport.Zoom, error) {
	switch v.Zoom {
	case config.ZoomFitWidth:
		return viewport.FitWidth(), nil
	case config.ZoomFitPage:
		return viewport.FitPage(), nil
	case config.ZoomCustom:
		return viewport.Custom(v.ZoomFactor), nil
	default:
		return viewport.ParseZoom(v.Zoom)
	}
}

// TextOptions converts the documents section into pagination options.
func TextOptions(d config.DocumentsConfig) textdoc.Options {
	return textdoc.Options{
		Columns:      d.Columns,
		LinesPerPage: d.LinesPerPage,
		Metrics: textdoc.Metrics{
			Margin:     d.Margin,
			CharWidth:  d.CharWidth,
			LineHeight: d.LineHeight,
		},
	}
}
