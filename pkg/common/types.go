package common

const (
	MaxMoves = 256
)

// Evals are in pawns, positive for White.
const (
	WhiteWinsEval = 1e9
	BlackWinsEval = -1e9
	DrawEval      = 0.0
	// Evals beyond the thresholds are forced mates.
	WhiteWinsThreshold = 1e8
	BlackWinsThreshold = -1e8
)

type LimitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
}

type SearchParams struct {
	Positions []Position
	Limits    LimitsType
	Progress  func(si SearchInfo)
	// Interrupt is polled between expansions.
	Interrupt func() bool
}

type RootMove struct {
	Move  Move
	Eval  float64
	State GameState
}

type SearchInfo struct {
	Score      UciScore
	Eval       float64
	Depth      int
	Nodes      int64
	Expansions int64
	Time       int64
	MainLine   []Move
	RootMoves  []RootMove
	Completed  bool
}

type UciScore struct {
	Centipawns int
	Mate       int
}
