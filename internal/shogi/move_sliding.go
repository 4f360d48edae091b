package shogi

// 走り駒（飛・角・香）の走法生成
func genSlidingMoves(p *Position, from int, dirs [][2]int, moves *[]Move) {
	pc := p.Board.Squares[from]
	side := pc.Side()
	dir := 1
	if side == White {
		dir = -1
	}
	row, col := rowOf(from), colOf(from)
	for _, d := range dirs {
		r, c := row+d[0]*dir, col+d[1]
		for onBoard(r, c) {
			to := indexOf(r, c)
			dst := p.Board.Squares[to]
			if dst == 0 {
				pushMove(p, from, to, moves)
			} else {
				if dst.Side() != side {
					pushMove(p, from, to, moves)
				}
				break
			}
			r += d[0] * dir
			c += d[1]
		}
	}
}

// genMovesFrom sq の駒の疑似合法手を生成する（手番に関係なく駒の持ち主基準）。
// 竜は飛の走りに斜め一歩、馬は角の走りに縦横一歩が加わる。
// 成銀・成桂・成香・と金は金の動き。
func genMovesFrom(p *Position, sq int, moves *[]Move) {
	pc := p.Board.Squares[sq]
	if pc == 0 {
		return
	}
	switch pc.BaseType() {
	case PieceKing:
		genStepMoves(p, sq, kingSteps[:], moves)
	case PieceGold:
		genStepMoves(p, sq, goldSteps[:], moves)
	case PieceRook:
		genSlidingMoves(p, sq, orthoSteps[:], moves)
		if pc.Promoted() {
			genStepMoves(p, sq, diagSteps[:], moves)
		}
	case PieceBishop:
		genSlidingMoves(p, sq, diagSteps[:], moves)
		if pc.Promoted() {
			genStepMoves(p, sq, orthoSteps[:], moves)
		}
	case PieceSilver:
		if pc.Promoted() {
			genStepMoves(p, sq, goldSteps[:], moves)
		} else {
			genStepMoves(p, sq, silverSteps[:], moves)
		}
	case PieceKnight:
		if pc.Promoted() {
			genStepMoves(p, sq, goldSteps[:], moves)
		} else {
			genStepMoves(p, sq, knightSteps[:], moves)
		}
	case PieceLance:
		if pc.Promoted() {
			genStepMoves(p, sq, goldSteps[:], moves)
		} else {
			genSlidingMoves(p, sq, pawnSteps[:], moves)
		}
	case PiecePawn:
		if pc.Promoted() {
			genStepMoves(p, sq, goldSteps[:], moves)
		} else {
			genStepMoves(p, sq, pawnSteps[:], moves)
		}
	}
}
