package game

// Director plays a game automatically, choosing one action at a time
type Director interface {
	// Init prepares the director for a freshly started game
	Init(*Game)

	// Act picks the next action, or returns false when it has none
	Act() (CellAction, bool)

	// End releases anything held for the current game
	End()
}

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "open"
	case RightClick:
		return "flag"
	case MiddleClick:
		return "unknown"
	default:
		return "invalid"
	}
}

// CellAction is a single command against one cell
type CellAction struct {
	Coord
	Action Action
}

func (action CellAction) String() string {
	return action.Action.String() + " " + action.Coord.String()
}

func (cell *Cell) Click() CellAction {
	return CellAction{Coord: cell.Coord(), Action: Click}
}

func (cell *Cell) RightClick() CellAction {
	return CellAction{Coord: cell.Coord(), Action: RightClick}
}

func (cell *Cell) MiddleClick() CellAction {
	return CellAction{Coord: cell.Coord(), Action: MiddleClick}
}
