package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats lists the supported --format values.
var Formats = []string{"json", "edn"}

// Valid reports whether name is a supported output format ("" means json).
func Valid(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Write writes v in the requested format.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON writes strict JSON, one document per line unless pretty.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
