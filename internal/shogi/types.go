package shogi

type Side int8

const (
	NoSide Side = -1
	Black  Side = 0 // 先手
	White  Side = 1 // 後手
)

// Opposite 相手側を返す
func Opposite(side Side) Side {
	if side == Black {
		return White
	}
	if side == White {
		return Black
	}
	return NoSide
}

type PieceType int8

const (
	PieceNone   PieceType = iota
	PieceKing             // 玉
	PieceRook             // 飛車
	PieceBishop           // 角
	PieceGold             // 金
	PieceSilver           // 銀
	PieceKnight           // 桂
	PieceLance            // 香
	PiecePawn             // 歩
)

// 成れる駒かどうか（玉と金は成れない）
func canPromoteType(pt PieceType) bool {
	switch pt {
	case PieceRook, PieceBishop, PieceSilver, PieceKnight, PieceLance, PiecePawn:
		return true
	}
	return false
}

// Piece 0=空；>0 先手；<0 後手；絶対値 = 駒種（+8 で成駒）
type Piece int8

const promotedOffset = 8

func makePiece(side Side, pt PieceType, promoted bool) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	v := Piece(pt)
	if promoted {
		v += promotedOffset
	}
	if side == White {
		return -v
	}
	return v
}

func (p Piece) abs() Piece {
	if p < 0 {
		return -p
	}
	return p
}

// BaseType 成りを除いた駒種
func (p Piece) BaseType() PieceType {
	a := p.abs()
	if a > promotedOffset {
		return PieceType(a - promotedOffset)
	}
	return PieceType(a)
}

func (p Piece) Promoted() bool {
	return p.abs() > promotedOffset
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Black
	}
	return White
}

// promote 成駒にする（成れない駒はそのまま）
func (p Piece) promote() Piece {
	if p == 0 || p.Promoted() || !canPromoteType(p.BaseType()) {
		return p
	}
	if p > 0 {
		return p + promotedOffset
	}
	return p - promotedOffset
}

type Board struct {
	Squares [NumSquares]Piece
}

// DropFrom Move.From がこの値なら打つ手
const DropFrom = -1

// Move 指し手。盤上の移動（From>=0）と持ち駒を打つ手（From==DropFrom）を
// ひとつの構造体で表す。打つ手は Promote も Captured も持たない。
type Move struct {
	From     int       `json:"from"` // DropFrom なら打つ手
	To       int       `json:"to"`
	Piece    PieceType `json:"piece"`   // 移動なら元の駒種、打つ手なら打つ駒種
	Promote  bool      `json:"promote"`
	Captured Piece     `json:"-"` // 生成時点の取る駒（打つ手では常に 0）
	Score    int       `json:"-"` // 探索の並べ替え用、JSON には出さない
}

func (m Move) IsDrop() bool { return m.From == DropFrom }

// Hands 持ち駒。side × 駒種（成駒は持ち駒にならない）
type Hands [2][promotedOffset + 1]int8

func sideIndex(side Side) int {
	if side == White {
		return 1
	}
	return 0
}

// Count side の pt の持ち駒枚数
func (h *Hands) Count(side Side, pt PieceType) int {
	return int(h[sideIndex(side)][pt])
}

// Position = 盤面 + 持ち駒 + 手番
type Position struct {
	Board      Board
	Hands      Hands
	SideToMove Side
	Hash       uint64
}

// Clone 局面の完全な複製を返す
func (p *Position) Clone() *Position {
	np := *p
	return &np
}
