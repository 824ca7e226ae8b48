package media

import (
	"regexp"
	"strings"

	"github.com/wanderlens/backend/internal/domain/shared"
)

// Gravity is one of nine named frame anchors used to place an overlay
type Gravity string

const (
	GravityNorthWest Gravity = "north_west"
	GravityNorth     Gravity = "north"
	GravityNorthEast Gravity = "north_east"
	GravityWest      Gravity = "west"
	GravityCenter    Gravity = "center"
	GravityEast      Gravity = "east"
	GravitySouthWest Gravity = "south_west"
	GravitySouth     Gravity = "south"
	GravitySouthEast Gravity = "south_east"
)

// String returns the string representation of Gravity
func (g Gravity) String() string {
	return string(g)
}

// GravityFromPosition maps x/y percentages of the frame to the nearest of
// the nine anchors. The frame is divided into thirds along each axis: the
// outer thirds snap to the corresponding edge or corner, the middle third
// to the center band.
func GravityFromPosition(x, y int) Gravity {
	switch {
	case x < 33 && y < 33:
		return GravityNorthWest
	case x > 66 && y < 33:
		return GravityNorthEast
	case x < 33 && y > 66:
		return GravitySouthWest
	case x > 66 && y > 66:
		return GravitySouthEast
	case y < 33:
		return GravityNorth
	case y > 66:
		return GravitySouth
	case x < 33:
		return GravityWest
	case x > 66:
		return GravityEast
	default:
		return GravityCenter
	}
}

var hexColorPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// Position holds overlay placement as percentage-of-frame coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WatermarkSetting configures the text overlay applied to derived display
// variants. Exactly one setting is active at a time; updating creates a new
// active setting and deactivates the rest.
type WatermarkSetting struct {
	shared.BaseEntity
	Text       string   `json:"text"`
	FontFamily string   `json:"font_family"`
	FontSize   int      `json:"font_size"`
	Color      string   `json:"color"` // hex, without leading #
	Position   Position `json:"position"`
	Opacity    int      `json:"opacity"` // 0-100
	Active     bool     `json:"active"`
}

// Default watermark values applied when a field is left unset
const (
	DefaultWatermarkText     = "© WanderLens"
	DefaultWatermarkFont     = "Arial"
	DefaultWatermarkFontSize = 24
	DefaultWatermarkColor    = "FFFFFF"
	DefaultWatermarkOpacity  = 70
)

// DefaultWatermarkPosition anchors the overlay near the bottom-right corner
var DefaultWatermarkPosition = Position{X: 50, Y: 90}

// NewWatermarkSetting creates an active watermark setting, filling defaults
// for any unset field
func NewWatermarkSetting(text, fontFamily string, fontSize int, color string, pos Position, opacity int) (*WatermarkSetting, error) {
	if text == "" {
		text = DefaultWatermarkText
	}
	if fontFamily == "" {
		fontFamily = DefaultWatermarkFont
	}
	if fontSize == 0 {
		fontSize = DefaultWatermarkFontSize
	}
	if fontSize < 10 || fontSize > 100 {
		return nil, shared.NewDomainError("INVALID_FONT_SIZE", "Font size must be between 10 and 100")
	}
	if color == "" {
		color = DefaultWatermarkColor
	}
	if !hexColorPattern.MatchString(color) {
		return nil, shared.NewDomainError("INVALID_COLOR", "Color must be a 6-digit hex value")
	}
	if opacity == 0 {
		opacity = DefaultWatermarkOpacity
	}
	if opacity < 0 || opacity > 100 {
		return nil, shared.NewDomainError("INVALID_OPACITY", "Opacity must be between 0 and 100")
	}
	if pos.X < 0 || pos.X > 100 || pos.Y < 0 || pos.Y > 100 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position must be percentages between 0 and 100")
	}

	return &WatermarkSetting{
		BaseEntity: shared.NewBaseEntity(),
		Text:       text,
		FontFamily: fontFamily,
		FontSize:   fontSize,
		Color:      strings.TrimPrefix(color, "#"),
		Position:   pos,
		Opacity:    opacity,
		Active:     true,
	}, nil
}

// Gravity returns the anchor derived from the configured position
func (w *WatermarkSetting) Gravity() Gravity {
	return GravityFromPosition(w.Position.X, w.Position.Y)
}
