package book

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"tsumeshogi/internal/shogi"
)

// 詰将棋の問題集を行単位で読むパーサ。形式は SFEN 書式の定跡ファイルに
// 倣った素朴なテキスト：
//
//	# で始まる行はコメント
//	sfen <盤面> <手番> <持ち駒> <手数>   … 問題の始まり
//	7g7f                                 … 続く行は USI 表記の解答手順
//	空行または次の sfen で問題が閉じる

var ErrBadLine = errors.New("book: malformed line")

// Problem 一問分。Solution は攻め方の初手から交互に並ぶ。
type Problem struct {
	SFEN     string
	Pos      *shogi.Position
	Solution []shogi.Move
}

type Parser struct {
	current *Problem
	cursor  *shogi.Position // 解答手順を進めながら指し手を解決する
}

func NewParser() *Parser {
	return &Parser{}
}

// ParseLine 1 行読み進める。問題がひとつ完結したらそれを返す。
func (p *Parser) ParseLine(line string) (*Problem, error) {
	line = strings.TrimSpace(line)

	if line == "" {
		return p.take(), nil
	}
	if strings.HasPrefix(line, "#") {
		return nil, nil
	}

	if strings.HasPrefix(line, "sfen ") {
		done := p.take()
		pos, err := shogi.DecodeSFEN(strings.TrimPrefix(line, "sfen "))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadLine, line, err)
		}
		p.current = &Problem{SFEN: pos.EncodeSFEN(), Pos: pos}
		p.cursor = pos
		return done, nil
	}

	if p.current == nil {
		return nil, fmt.Errorf("%w: move before any sfen line: %q", ErrBadLine, line)
	}

	// 手順行：先頭フィールドが USI の指し手、残りは無視する
	notation := strings.Fields(line)[0]
	mv, err := p.cursor.ParseUSIMove(notation)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadLine, line, err)
	}
	next, ok := p.cursor.ApplyMove(mv)
	if !ok {
		return nil, fmt.Errorf("%w: move %q does not apply", ErrBadLine, notation)
	}
	p.current.Solution = append(p.current.Solution, mv)
	p.cursor = next
	return nil, nil
}

// Flush 読み残しの問題を取り出す（EOF 処理用）
func (p *Parser) Flush() *Problem {
	return p.take()
}

func (p *Parser) take() *Problem {
	done := p.current
	p.current = nil
	p.cursor = nil
	return done
}

// ReadAll r を最後まで読んで全問題を返す
func ReadAll(r io.Reader) ([]*Problem, error) {
	parser := NewParser()
	var out []*Problem
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		done, err := parser.ParseLine(sc.Text())
		if err != nil {
			return nil, err
		}
		if done != nil {
			out = append(out, done)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if done := parser.Flush(); done != nil {
		out = append(out, done)
	}
	return out, nil
}
