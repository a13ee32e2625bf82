package game

type Kind int
type Status int
type BoardState int

const (
	Empty Kind = iota
	Mine
)

const (
	Closed Status = iota
	Opened
	MarkedMine
	MarkedUnknown
)

func (kind Kind) String() string {
	switch kind {
	case Empty:
		return "empty"
	case Mine:
		return "mine"
	default:
		return "unknown"
	}
}

func (status Status) String() string {
	switch status {
	case Closed:
		return "closed"
	case Opened:
		return "opened"
	case MarkedMine:
		return "marked-mine"
	case MarkedUnknown:
		return "marked-unknown"
	default:
		return "invalid"
	}
}

const (
	// Pixel width and height of a single cell, for translating pointer positions
	defaultCellSize = 30
)

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "ongoing"
	}
}
