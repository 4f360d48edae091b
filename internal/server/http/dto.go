package httpserver

import "tsumeshogi/internal/shogi"

// 指し手はワイヤ上では USI 表記の文字列（"7g7f"、"G*5b" など）

type SolveRequest struct {
	SFEN      string `json:"sfen"`
	Attacker  int    `json:"attacker"` // 0=先手, 1=後手
	MaxDepth  int    `json:"max_depth"`
	TimeoutMs int64  `json:"timeout_ms"`
}

type SolveResponse struct {
	IsMate bool     `json:"is_mate"`
	Moves  []string `json:"moves"`
	Nodes  int64    `json:"nodes"`
	TimeMs int64    `json:"time_ms"`
}

type OneMoveRequest struct {
	SFEN     string `json:"sfen"`
	Attacker int    `json:"attacker"`
}

type OneMoveResponse struct {
	Found bool   `json:"found"`
	Move  string `json:"move,omitempty"`
}

type NewProblemRequest struct {
	SFEN     string `json:"sfen"`
	Attacker int    `json:"attacker"`
}

type ProblemResponse struct {
	ProblemID  string   `json:"problem_id"`
	Position   string   `json:"position"` // SFEN
	ToMove     int      `json:"to_move"`
	LegalMoves []string `json:"legal_moves"`
	Status     string   `json:"status"` // "ongoing" / "check" / "mate"
}

type StateRequest struct {
	ProblemID string `json:"problem_id"`
}

type PlayRequest struct {
	ProblemID string `json:"problem_id"`
	Move      string `json:"move"`
}

func sideToInt(s shogi.Side) int {
	switch s {
	case shogi.Black:
		return 0
	case shogi.White:
		return 1
	default:
		return -1
	}
}

func intToSide(v int) shogi.Side {
	if v == 1 {
		return shogi.White
	}
	return shogi.Black
}

func movesToUSI(ms []shogi.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.USI()
	}
	return out
}

func statusOf(pos *shogi.Position) string {
	if pos.IsCheckmate() {
		return "mate"
	}
	if pos.IsInCheck(pos.SideToMove) {
		return "check"
	}
	return "ongoing"
}
