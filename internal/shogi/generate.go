package shogi

// GeneratePseudoMovesForSide side の盤上の疑似合法手（王手放置は考慮しない、打つ手は含まない）
func (p *Position) GeneratePseudoMovesForSide(side Side) []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		genMovesFrom(p, sq, &moves)
	}
	return moves
}

// GenerateDrops side の打つ手。二歩・行き所のない駒・打ち歩詰めを除外する。
// 王手がかかっていても生成する（合駒は合法性フィルタで残る）。
func (p *Position) GenerateDrops(side Side) []Move {
	var moves []Move
	p.genDrops(side, &moves)
	return moves
}

func (p *Position) genDrops(side Side, moves *[]Move) {
	si := sideIndex(side)
	for pt := PieceRook; pt <= PiecePawn; pt++ {
		if p.Hands[si][pt] == 0 {
			continue
		}

		// 二歩：自分の不成の歩がある筋には打てない
		var pawnFiles [Cols]bool
		if pt == PiecePawn {
			for sq := 0; sq < NumSquares; sq++ {
				pc := p.Board.Squares[sq]
				if pc != 0 && pc.Side() == side && pc.BaseType() == PiecePawn && !pc.Promoted() {
					pawnFiles[colOf(sq)] = true
				}
			}
		}

		for sq := 0; sq < NumSquares; sq++ {
			if p.Board.Squares[sq] != 0 {
				continue
			}
			if dropForbiddenRow(pt, side, rowOf(sq)) {
				continue
			}
			if pt == PiecePawn {
				if pawnFiles[colOf(sq)] {
					continue
				}
				if p.pawnDropGivesMate(sq, side) {
					continue // 打ち歩詰め
				}
			}
			*moves = append(*moves, Move{From: DropFrom, To: sq, Piece: pt})
		}
	}
}

// pawnDropGivesMate sq への歩打ちがそれ自体で詰みになるか（＝反則）。
// 歩の王手は玉に隣接するので合駒では受からない。受け方の盤上の手だけ調べる。
func (p *Position) pawnDropGivesMate(sq int, side Side) bool {
	defender := Opposite(side)
	kingSq := p.KingSquare(defender)
	if kingSq < 0 {
		return false
	}
	// 玉の正面に打つときだけ王手になる
	if colOf(kingSq) != colOf(sq) || rowOf(sq)+forwardDir(side) != rowOf(kingSq) {
		return false
	}

	np := p.Clone()
	np.Board.Squares[sq] = makePiece(side, PiecePawn, false)
	np.SideToMove = defender
	np.Hash = 0 // 局所判定のみ、増分更新はしない

	for _, mv := range np.GeneratePseudoMovesForSide(defender) {
		if tgt := np.Board.Squares[mv.To]; tgt != 0 && tgt.BaseType() == PieceKing {
			continue
		}
		nnp, ok := np.ApplyMove(mv)
		if !ok {
			continue
		}
		if !nnp.IsInCheck(defender) {
			return false // 逃げ道か取り返しがある
		}
	}
	return true
}

// GeneratePseudoMoves 手番側の疑似合法手（打つ手を含む）
func (p *Position) GeneratePseudoMoves() []Move {
	moves := p.GeneratePseudoMovesForSide(p.SideToMove)
	p.genDrops(p.SideToMove, &moves)
	return moves
}

// GenerateLegalMoves 手番側の合法手。指した後に自玉に王手が残る手を除く。
func (p *Position) GenerateLegalMoves() []Move {
	side := p.SideToMove
	pseudo := p.GeneratePseudoMoves()
	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		// 玉を取る手は生成しない（王手放置は前の手番で弾かれている前提）
		if !mv.IsDrop() {
			if tgt := p.Board.Squares[mv.To]; tgt != 0 && tgt.BaseType() == PieceKing {
				continue
			}
		}
		np, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		if np.IsInCheck(side) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

// ApplyMove 指し手を適用した新しい局面を返す。元の局面は変更しない。
// Zobrist ハッシュは増分更新する。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if m.To < 0 || m.To >= NumSquares {
		return nil, false
	}
	side := p.SideToMove
	si := sideIndex(side)
	np := *p
	h := p.EnsureHash()
	np.Hash = h

	if m.IsDrop() {
		if m.Piece < PieceRook || m.Piece > PiecePawn {
			return nil, false
		}
		if np.Board.Squares[m.To] != 0 || np.Hands[si][m.Piece] == 0 {
			return nil, false
		}
		pc := makePiece(side, m.Piece, false)
		cnt := np.Hands[si][m.Piece]
		np.Hands[si][m.Piece] = cnt - 1
		np.Board.Squares[m.To] = pc

		h ^= handHashKey(side, m.Piece, int(cnt))
		h ^= handHashKey(side, m.Piece, int(cnt)-1)
		h ^= pieceHashKey(pc, m.To)
	} else {
		if m.From < 0 || m.From >= NumSquares {
			return nil, false
		}
		pc := p.Board.Squares[m.From]
		if pc == 0 || pc.Side() != side {
			return nil, false
		}
		captured := p.Board.Squares[m.To]
		if captured != 0 && captured.Side() == side {
			return nil, false
		}

		h ^= pieceHashKey(pc, m.From)
		if captured != 0 {
			// 取った駒は不成に戻して持ち駒へ
			base := captured.BaseType()
			cnt := np.Hands[si][base]
			np.Hands[si][base] = cnt + 1

			h ^= pieceHashKey(captured, m.To)
			h ^= handHashKey(side, base, int(cnt))
			h ^= handHashKey(side, base, int(cnt)+1)
		}
		if m.Promote {
			if pc.Promoted() || !canPromoteType(pc.BaseType()) {
				return nil, false
			}
			pc = pc.promote()
		}
		np.Board.Squares[m.To] = pc
		np.Board.Squares[m.From] = 0
		h ^= pieceHashKey(pc, m.To)
	}

	np.SideToMove = Opposite(side)
	h ^= zobristSide
	np.Hash = h
	return &np, true
}
