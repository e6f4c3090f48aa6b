package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Color is one entry of the fixed mino palette.
type Color uint8

// Black is the zero value so a zero Grid is empty.
const (
	Black Color = iota
	Teal
	Purple
	Red
	Blue
	Yellow
	Green
	Orange
	White
)

// Empty is the sentinel for an unpainted cell.
const Empty = Black

var ErrUnknownColor = errors.New("unknown color")

type colorInfo struct {
	key string
	css string
}

var colorTable = [...]colorInfo{
	Black:  {key: "black", css: "black"},
	Teal:   {key: "teal", css: "cyan"},
	Purple: {key: "purple", css: "purple"},
	Red:    {key: "red", css: "red"},
	Blue:   {key: "blue", css: "blue"},
	Yellow: {key: "yellow", css: "gold"},
	Green:  {key: "green", css: "green"},
	Orange: {key: "orange", css: "orange"},
	White:  {key: "white", css: "white"},
}

// Selector order.
var palette = []Color{Teal, Purple, Red, Blue, Yellow, Green, Orange, Black, White}

// Palette returns every color in selector order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

// PaletteIndex returns c's position in selector order, or -1.
func PaletteIndex(c Color) int {
	for i, p := range palette {
		if p == c {
			return i
		}
	}
	return -1
}

func (c Color) Valid() bool { return int(c) < len(colorTable) }

// String returns the palette key (teal, purple, ...).
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorTable[c].key
}

// CSS returns the wire value used in fragments (cyan for teal, gold for yellow).
func (c Color) CSS() string {
	if !c.Valid() {
		return ""
	}
	return colorTable[c].css
}

// ParseColor accepts a palette key or a CSS value, case-insensitively.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Empty, ErrUnknownColor
	}
	for i, info := range colorTable {
		if s == info.key || s == info.css {
			return Color(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func (c Color) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, uint8(c))
	}
	return json.Marshal(c.CSS())
}

func (c *Color) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
