package cli

import "fmt"

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

type outOfBoundsError struct {
	row, col int
}

func (e outOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) is off the board (rows 0-19, cols 0-9)", e.row, e.col)
}
