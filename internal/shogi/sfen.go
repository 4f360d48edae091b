package shogi

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidSFEN = errors.New("invalid SFEN")

var letterToPieceType = map[byte]PieceType{
	'k': PieceKing,
	'r': PieceRook,
	'b': PieceBishop,
	'g': PieceGold,
	's': PieceSilver,
	'n': PieceKnight,
	'l': PieceLance,
	'p': PiecePawn,
}

func pieceTypeLetter(pt PieceType) byte {
	switch pt {
	case PieceKing:
		return 'k'
	case PieceRook:
		return 'r'
	case PieceBishop:
		return 'b'
	case PieceGold:
		return 'g'
	case PieceSilver:
		return 's'
	case PieceKnight:
		return 'n'
	case PieceLance:
		return 'l'
	case PiecePawn:
		return 'p'
	}
	return 0
}

func pieceLetter(pc Piece) byte {
	c := pieceTypeLetter(pc.BaseType())
	if pc.Side() == Black {
		c -= 'a' - 'A'
	}
	return c
}

// EncodeSFEN 局面を SFEN 文字列にする。手数は持っていないので常に 1。
func (p *Position) EncodeSFEN() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if pc.Promoted() {
				sb.WriteByte('+')
			}
			sb.WriteByte(pieceLetter(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 持ち駒：先手の R B G S N L P、続けて後手の小文字。2 枚以上は枚数を前置。
	handOrder := []PieceType{PieceRook, PieceBishop, PieceGold, PieceSilver, PieceKnight, PieceLance, PiecePawn}
	any := false
	for _, side := range []Side{Black, White} {
		for _, pt := range handOrder {
			n := p.Hands.Count(side, pt)
			if n == 0 {
				continue
			}
			any = true
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			c := pieceTypeLetter(pt)
			if side == Black {
				c -= 'a' - 'A'
			}
			sb.WriteByte(c)
		}
	}
	if !any {
		sb.WriteByte('-')
	}

	sb.WriteString(" 1")
	return sb.String()
}

// DecodeSFEN SFEN 文字列から局面を作る。手数フィールドは省略可。
func DecodeSFEN(sfen string) (*Position, error) {
	parts := strings.Fields(strings.TrimSpace(sfen))
	if len(parts) < 3 {
		return nil, ErrInvalidSFEN
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, ErrInvalidSFEN
	}
	var b Board
	for r := 0; r < Rows; r++ {
		c := 0
		promoted := false
		for i := 0; i < len(rows[r]); i++ {
			ch := rows[r][i]
			if ch >= '1' && ch <= '9' {
				if promoted {
					return nil, ErrInvalidSFEN
				}
				c += int(ch - '0')
				continue
			}
			if ch == '+' {
				if promoted {
					return nil, ErrInvalidSFEN
				}
				promoted = true
				continue
			}
			if c >= Cols {
				return nil, ErrInvalidSFEN
			}
			lower := ch | 0x20
			pt, ok := letterToPieceType[lower]
			if !ok {
				return nil, ErrInvalidSFEN
			}
			if promoted && !canPromoteType(pt) {
				return nil, ErrInvalidSFEN
			}
			side := White
			if ch >= 'A' && ch <= 'Z' {
				side = Black
			}
			b.Squares[indexOf(r, c)] = makePiece(side, pt, promoted)
			promoted = false
			c++
		}
		if c != Cols || promoted {
			return nil, ErrInvalidSFEN
		}
	}

	var stm Side
	switch parts[1] {
	case "b":
		stm = Black
	case "w":
		stm = White
	default:
		return nil, ErrInvalidSFEN
	}

	var hands Hands
	if parts[2] != "-" {
		count := 0
		for i := 0; i < len(parts[2]); i++ {
			ch := parts[2][i]
			if ch >= '0' && ch <= '9' {
				count = count*10 + int(ch-'0')
				continue
			}
			pt, ok := letterToPieceType[ch|0x20]
			if !ok || pt == PieceKing {
				return nil, ErrInvalidSFEN
			}
			side := White
			if ch >= 'A' && ch <= 'Z' {
				side = Black
			}
			if count == 0 {
				count = 1
			}
			if count > zobristHandMax {
				return nil, ErrInvalidSFEN
			}
			hands[sideIndex(side)][pt] += int8(count)
			count = 0
		}
		if count != 0 {
			return nil, ErrInvalidSFEN
		}
	}

	pos := &Position{
		Board:      b,
		Hands:      hands,
		SideToMove: stm,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// ---- USI 表記 ----

var ErrInvalidMove = errors.New("invalid move notation")

func formatSquare(sq int) string {
	return string([]byte{byte('0' + FileOf(sq)), byte('a' + rowOf(sq))})
}

func parseSquare(s string) (int, error) {
	if len(s) != 2 || s[0] < '1' || s[0] > '9' || s[1] < 'a' || s[1] > 'i' {
		return -1, ErrInvalidMove
	}
	return SquareAt(int(s[0]-'0'), int(s[1]-'a')+1), nil
}

// USI 指し手の USI 表記（"7g7f"、"2b3a+"、"P*5e"）
func (m Move) USI() string {
	if m.IsDrop() {
		c := pieceTypeLetter(m.Piece)
		c -= 'a' - 'A'
		return string(c) + "*" + formatSquare(m.To)
	}
	s := formatSquare(m.From) + formatSquare(m.To)
	if m.Promote {
		s += "+"
	}
	return s
}

func (m Move) String() string { return m.USI() }

// ParseUSIMove USI 表記の指し手を読む。駒種・取る駒は現局面から補う。
// 合法性の検査はしない。
func (p *Position) ParseUSIMove(s string) (Move, error) {
	if len(s) == 4 && s[1] == '*' {
		pt, ok := letterToPieceType[s[0]|0x20]
		if !ok || pt == PieceKing {
			return Move{}, ErrInvalidMove
		}
		to, err := parseSquare(s[2:4])
		if err != nil {
			return Move{}, err
		}
		return Move{From: DropFrom, To: to, Piece: pt}, nil
	}
	if len(s) != 4 && !(len(s) == 5 && s[4] == '+') {
		return Move{}, ErrInvalidMove
	}
	from, err := parseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := parseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	pc := p.Board.Squares[from]
	if pc == 0 {
		return Move{}, ErrInvalidMove
	}
	return Move{
		From:     from,
		To:       to,
		Piece:    pc.BaseType(),
		Promote:  len(s) == 5,
		Captured: p.Board.Squares[to],
	}, nil
}
