package model

// DefaultSelectedColor is the color selected on a fresh board.
const DefaultSelectedColor = Teal

// AppState is everything persisted in a fragment.
type AppState struct {
	Grid                 Grid  `json:"grid"`
	ShouldClearFullLines bool  `json:"shouldClearFullLines"`
	SelectedColor        Color `json:"selectedColor"`
}

func DefaultAppState() AppState {
	return AppState{
		Grid:          NewGrid(),
		SelectedColor: DefaultSelectedColor,
	}
}
