package shogi

import "sync"

const (
	zobristPieceCodes = 2*promotedOffset + 1 // 絶対値 1..16（成駒は別コード）、0 は空きで不使用
	zobristHandMax    = 18                   // 歩 18 枚が上限
)

var (
	zobristOnce sync.Once

	zobristPieces [2][zobristPieceCodes][NumSquares]uint64
	zobristHands  [2][promotedOffset + 1][zobristHandMax + 1]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for code := 1; code < zobristPieceCodes; code++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][code][sq] = next()
				}
			}
			for pt := 1; pt <= promotedOffset; pt++ {
				for n := 0; n <= zobristHandMax; n++ {
					zobristHands[side][pt][n] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || sq < 0 || sq >= NumSquares {
		return 0
	}
	initZobrist()

	var sideIdx int
	switch pc.Side() {
	case Black:
		sideIdx = 0
	case White:
		sideIdx = 1
	default:
		return 0
	}

	code := int(pc.abs())
	if code <= 0 || code >= zobristPieceCodes {
		return 0
	}
	return zobristPieces[sideIdx][code][sq]
}

func handHashKey(side Side, pt PieceType, count int) uint64 {
	if pt <= PieceNone || pt > PiecePawn || count < 0 || count > zobristHandMax {
		return 0
	}
	initZobrist()
	return zobristHands[sideIndex(side)][pt][count]
}

// CalculateHash 局面の Zobrist ハッシュを全量計算する。
// 持ち駒は「現在の枚数」に対応するキーだけを含める（増分更新と整合する）。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 {
			continue
		}
		h ^= pieceHashKey(pc, sq)
	}
	for _, side := range []Side{Black, White} {
		for pt := PieceRook; pt <= PiecePawn; pt++ {
			h ^= handHashKey(side, pt, p.Hands.Count(side, pt))
		}
	}
	if p.SideToMove == White {
		h ^= zobristSide
	}
	return h
}

// EnsureHash Position.Hash を初期化済みにして返す
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
