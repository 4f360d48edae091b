package shogi

const (
	Rows       = 9
	Cols       = 9
	NumSquares = Rows * Cols
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// SquareAt 筋・段（1〜9、棋譜表記と同じ向き）からマス番号を作る。
// 範囲外は -1。内部の col 0 は 9 筋、row 0 は一段目。
func SquareAt(file, rank int) int {
	if file < 1 || file > 9 || rank < 1 || rank > 9 {
		return -1
	}
	return indexOf(rank-1, 9-file)
}

// FileOf マス番号 → 筋（1〜9）
func FileOf(sq int) int { return 9 - colOf(sq) }

// RankOf マス番号 → 段（1〜9）
func RankOf(sq int) int { return rowOf(sq) + 1 }

// 前進方向：先手は上（-1）、後手は下（+1）
func forwardDir(side Side) int {
	if side == Black {
		return -1
	}
	if side == White {
		return +1
	}
	return 0
}

// 敵陣三段（成れる範囲）
func inPromotionZone(side Side, row int) bool {
	if side == Black {
		return row <= 2
	}
	if side == White {
		return row >= Rows-3
	}
	return false
}

// mustPromote 行き所のない駒になるため成りが強制される到達段か
func mustPromote(pt PieceType, side Side, toRow int) bool {
	switch pt {
	case PiecePawn, PieceLance:
		if side == Black {
			return toRow == 0
		}
		return toRow == Rows-1
	case PieceKnight:
		if side == Black {
			return toRow <= 1
		}
		return toRow >= Rows-2
	}
	return false
}

// 打てない段か（歩・香は最奥一段、桂は奥二段）
func dropForbiddenRow(pt PieceType, side Side, row int) bool {
	return mustPromote(pt, side, row)
}

const startposSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// NewInitialPosition 平手初期局面
func NewInitialPosition() *Position {
	pos, err := DecodeSFEN(startposSFEN)
	if err != nil {
		panic("startpos SFEN が不正: " + err.Error())
	}
	return pos
}
