package shogi

// 相対歩（先手基準、row の負方向が前）。後手は行成分を反転して使う。
var (
	kingSteps   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	goldSteps   = [6][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}}
	silverSteps = [5][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {1, -1}, {1, 1}}
	knightSteps = [2][2]int{{-2, -1}, {-2, 1}}
	pawnSteps   = [1][2]int{{-1, 0}}
	orthoSteps  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagSteps   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// pushMove 成り分岐を含めて候補に積む。敵陣がらみは成る手を先に積む。
// 行き所のない駒になる到達段では成りを強制する。
func pushMove(p *Position, from, to int, moves *[]Move) {
	pc := p.Board.Squares[from]
	side := pc.Side()
	base := pc.BaseType()
	m := Move{From: from, To: to, Piece: base, Captured: p.Board.Squares[to]}
	if pc.Promoted() || !canPromoteType(base) {
		*moves = append(*moves, m)
		return
	}
	if mustPromote(base, side, rowOf(to)) {
		m.Promote = true
		*moves = append(*moves, m)
		return
	}
	if inPromotionZone(side, rowOf(from)) || inPromotionZone(side, rowOf(to)) {
		pm := m
		pm.Promote = true
		*moves = append(*moves, pm)
	}
	*moves = append(*moves, m)
}

// 一歩駒の走法生成
func genStepMoves(p *Position, from int, steps [][2]int, moves *[]Move) {
	pc := p.Board.Squares[from]
	side := pc.Side()
	dir := 1
	if side == White {
		dir = -1
	}
	row, col := rowOf(from), colOf(from)
	for _, d := range steps {
		r, c := row+d[0]*dir, col+d[1]
		if !onBoard(r, c) {
			continue
		}
		dst := p.Board.Squares[indexOf(r, c)]
		if dst != 0 && dst.Side() == side {
			continue
		}
		pushMove(p, from, indexOf(r, c), moves)
	}
}
