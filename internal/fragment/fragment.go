// Package fragment encodes board state as a percent-escaped string suitable
// for the fragment part of a URL.
package fragment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/troynguyen8/tetris-sandbox/internal/model"
)

var (
	ErrEmpty     = errors.New("fragment is empty")
	ErrMalformed = errors.New("fragment is malformed")
)

// Encode serializes st as escaped JSON. Encoding a valid state cannot fail;
// an invalid color in st panics since it can only come from a programming error.
func Encode(st model.AppState) string {
	b, err := json.Marshal(st)
	if err != nil {
		panic(fmt.Sprintf("fragment: encode: %v", err))
	}
	return url.PathEscape(string(b))
}

// Decode parses a fragment produced by Encode. A leading '#' is ignored.
func Decode(s string) (model.AppState, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return model.AppState{}, ErrEmpty
	}
	raw, err := url.PathUnescape(s)
	if err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var wire struct {
		Grid                 *model.Grid  `json:"grid"`
		ShouldClearFullLines bool         `json:"shouldClearFullLines"`
		SelectedColor        *model.Color `json:"selectedColor"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if wire.Grid == nil {
		return model.AppState{}, fmt.Errorf("%w: missing grid", ErrMalformed)
	}
	st := model.AppState{
		Grid:                 *wire.Grid,
		ShouldClearFullLines: wire.ShouldClearFullLines,
		SelectedColor:        model.DefaultSelectedColor,
	}
	if wire.SelectedColor != nil {
		st.SelectedColor = *wire.SelectedColor
	}
	return st, nil
}

// Load decodes s, falling back to the default state. The error is returned so
// callers can log it; the returned state is always usable.
func Load(s string) (model.AppState, error) {
	st, err := Decode(s)
	if err != nil {
		return model.DefaultAppState(), err
	}
	return st, nil
}

// Link appends the encoded state to base as its fragment. Any existing
// fragment on base is replaced.
func Link(base string, st model.AppState) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + "#" + Encode(st)
}

// ParseLink extracts and decodes the fragment from a URL. Input without a
// '#' is treated as a bare fragment.
func ParseLink(link string) (model.AppState, error) {
	link = strings.TrimSpace(link)
	if i := strings.IndexByte(link, '#'); i >= 0 {
		return Decode(link[i+1:])
	}
	return Decode(link)
}
