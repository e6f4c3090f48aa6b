package mutate

import "fmt"

// InvalidColorError reports an edit with a color outside the palette.
type InvalidColorError struct {
	Color uint8
}

func (e InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color: %d", e.Color)
}

type UnknownRecordError struct {
	Kind string
}

func (e UnknownRecordError) Error() string {
	return fmt.Sprintf("unknown history record kind: %q", e.Kind)
}
