package shogi

import (
	"errors"
	"fmt"
)

// ErrNoKing 玉が盤上にない（探索の前提条件違反）
var ErrNoKing = errors.New("shogi: king missing")

// KingSquare side の玉の位置。見つからなければ -1。
func (p *Position) KingSquare(side Side) int {
	for sq, pc := range p.Board.Squares {
		if pc != 0 && pc.Side() == side && pc.BaseType() == PieceKing {
			return sq
		}
	}
	return -1
}

func (p *Position) KingExists(side Side) bool {
	return p.KingSquare(side) >= 0
}

// Validate 両玉が盤上にあるか。詰み探索の入口で使う。
func (p *Position) Validate() error {
	if !p.KingExists(Black) {
		return fmt.Errorf("%w: black", ErrNoKing)
	}
	if !p.KingExists(White) {
		return fmt.Errorf("%w: white", ErrNoKing)
	}
	return nil
}

// IsAttacked sq が bySide から利きを受けているかを走法シミュレーションで判定する。
// 将棋の駒はすべて「動ける先＝取れる先」なので、どれかの駒が sq へ動ければ利きがある。
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	for s := 0; s < NumSquares; s++ {
		pc := p.Board.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		var moves []Move
		genMovesFrom(p, s, &moves)
		for _, mv := range moves {
			if mv.To == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck side の玉に王手がかかっているか
func (p *Position) IsInCheck(side Side) bool {
	kingSq := p.KingSquare(side)
	if kingSq < 0 {
		return false
	}
	return p.IsAttacked(kingSq, Opposite(side))
}

// IsCheckmate 手番側が詰んでいるか（王手かつ合法手なし）
func (p *Position) IsCheckmate() bool {
	if !p.IsInCheck(p.SideToMove) {
		return false
	}
	return len(p.GenerateLegalMoves()) == 0
}
