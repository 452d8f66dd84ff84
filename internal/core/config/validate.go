package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/pagelens/internal/core/styles"
)

// Recommended live search debounce window.
const (
	MinRecommendedDebounce = 150 * time.Millisecond
	MaxRecommendedDebounce = 350 * time.Millisecond
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including color values and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips the
// config file check). This calls Validate() first for basic structural
// validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("search.highlight_color", c.Search.HighlightColor, isHexColor),
		criterio.Run("search.batch_color", c.Search.BatchColor, isHexColor),
		c.validateThresholds(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if d := c.Search.Debounce; d < MinRecommendedDebounce || d > MaxRecommendedDebounce {
		warnings = append(warnings, ValidationWarning{
			Category: "Search",
			Item:     "debounce",
			Message:  fmt.Sprintf("%s is outside the recommended %s-%s range", d, MinRecommendedDebounce, MaxRecommendedDebounce),
		})
	}

	if c.View.Zoom == ZoomCustom {
		cellAspect := c.TUI.CellHeight / c.TUI.CellWidth
		glyphAspect := c.Documents.LineHeight / c.Documents.CharWidth
		if diff := cellAspect - glyphAspect; diff > 0.01 || diff < -0.01 {
			warnings = append(warnings, ValidationWarning{
				Category: "TUI",
				Item:     "cell_height",
				Message:  "terminal cell aspect differs from the document glyph aspect; text will be resampled",
			})
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateThresholds() error {
	var errs criterio.FieldErrorsBuilder
	if c.Minimap.HoverThreshold <= 0 {
		errs = errs.Append("minimap.hover_threshold", fmt.Errorf("must be positive"))
	}
	if c.Minimap.ClickThreshold <= 0 {
		errs = errs.Append("minimap.click_threshold", fmt.Errorf("must be positive"))
	}
	if c.TUI.DoubleClick <= 0 {
		errs = errs.Append("tui.double_click", fmt.Errorf("must be positive"))
	}
	if c.TUI.ScrollRows < 1 {
		errs = errs.Append("tui.scroll_rows", fmt.Errorf("must be at least 1"))
	}
	return errs.ToError()
}

func isHexColor(s string) error {
	if _, err := styles.ParseColor(s); err != nil {
		return fmt.Errorf("invalid hex color %q", s)
	}
	return nil
}
