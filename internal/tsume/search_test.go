package tsume

import (
	"errors"
	"testing"
	"time"

	"tsumeshogi/internal/shogi"
)

func mustDecode(t *testing.T, sfen string) *shogi.Position {
	t.Helper()
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		t.Fatalf("decode %q: %v", sfen, err)
	}
	return pos
}

// verifyMatingLine 手順を再生して健全性を確かめる：攻め方の手は全て王手、
// 最後の局面は受け方の詰み。
func verifyMatingLine(t *testing.T, pos *shogi.Position, attacker shogi.Side, moves []shogi.Move) {
	t.Helper()
	if len(moves)%2 != 1 {
		t.Fatalf("mating line must have odd length, got %d", len(moves))
	}
	cur := pos.Clone()
	if cur.SideToMove != attacker {
		cur.SideToMove = attacker
		cur.Hash = cur.CalculateHash()
	}
	defender := shogi.Opposite(attacker)
	for i, mv := range moves {
		np, ok := cur.ApplyMove(mv)
		if !ok {
			t.Fatalf("move %d (%s) not applicable", i, mv)
		}
		if i%2 == 0 && !np.IsInCheck(defender) {
			t.Fatalf("attacker move %d (%s) does not give check", i, mv)
		}
		cur = np
	}
	if !cur.IsCheckmate() {
		t.Fatal("line does not end in checkmate")
	}
}

func TestSearchGoldDropMate(t *testing.T) {
	// 1a の玉を自駒の歩 2 枚が塞ぎ、攻め方は金を持つ。G*1b の頭金で一手詰め。
	pos := mustDecode(t, "7pk/7p1/8K/9/9/9/9/9/9 b G 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !res.IsMate || len(res.Moves) != 1 {
		t.Fatalf("want 1-move mate, got IsMate=%v moves=%v", res.IsMate, res.Moves)
	}
	mv := res.Moves[0]
	if !mv.IsDrop() || mv.Piece != shogi.PieceGold || mv.To != shogi.SquareAt(1, 2) {
		t.Fatalf("want G*1b, got %s", mv)
	}
	verifyMatingLine(t, pos, shogi.Black, res.Moves)
}

func TestSearchRookOneMoveMate(t *testing.T) {
	// 5i の飛車が 5 筋を駆け上がって一手詰め（竜の斜め利きで逃げ道も塞がる）
	pos := mustDecode(t, "3pkp3/9/5K3/9/9/9/9/9/4R4 b - 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !res.IsMate || len(res.Moves) != 1 {
		t.Fatalf("want 1-move mate, got IsMate=%v moves=%v", res.IsMate, res.Moves)
	}
	if res.Moves[0].Piece != shogi.PieceRook {
		t.Fatalf("mating move should be the rook, got %s", res.Moves[0])
	}
	verifyMatingLine(t, pos, shogi.Black, res.Moves)
}

func TestSearchRookAndGoldInHand(t *testing.T) {
	// 5c の飛車 + 持ち金。3 手以内の詰みが必ずある。
	pos := mustDecode(t, "4k4/9/4R4/9/9/9/9/9/K8 b G 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 3})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !res.IsMate {
		t.Fatal("want mate within 3 plies")
	}
	if n := len(res.Moves); n != 1 && n != 3 {
		t.Fatalf("line length must be odd and <=3, got %d", n)
	}
	verifyMatingLine(t, pos, shogi.Black, res.Moves)
}

func TestSearchThreePlyMate(t *testing.T) {
	// 5b の飛車は支えがなく一手詰めはない。R5c+ から金打ちまでの 3 手詰め。
	pos := mustDecode(t, "4k4/4R4/9/9/9/9/9/9/K8 b G 1")

	res1, err := Search(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search depth 1: %v", err)
	}
	if res1.IsMate {
		t.Fatalf("no 1-move mate exists, got line %v", res1.Moves)
	}

	res3, err := Search(pos, shogi.Black, Options{MaxDepth: 3})
	if err != nil {
		t.Fatalf("search depth 3: %v", err)
	}
	if !res3.IsMate || len(res3.Moves) != 3 {
		t.Fatalf("want 3-ply mate, got IsMate=%v moves=%v", res3.IsMate, res3.Moves)
	}
	verifyMatingLine(t, pos, shogi.Black, res3.Moves)

	// 単調性：深さを広げても詰みの判定は変わらない
	res5, err := Search(pos, shogi.Black, Options{MaxDepth: 5})
	if err != nil {
		t.Fatalf("search depth 5: %v", err)
	}
	if !res5.IsMate {
		t.Fatal("mate at depth 3 must still be found at depth 5")
	}
	verifyMatingLine(t, pos, shogi.Black, res5.Moves)
}

func TestSearchBareKings(t *testing.T) {
	pos := mustDecode(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.IsMate || len(res.Moves) != 0 {
		t.Fatalf("two bare kings can never be mate: %+v", res)
	}
	if res.Nodes == 0 {
		t.Error("node counter did not advance")
	}
}

func TestSearchOpenKing(t *testing.T) {
	// 中央の裸玉に持ち金ひとつ：どう打っても逃げられる
	pos := mustDecode(t, "9/9/9/9/4k4/9/9/9/4K4 b G 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.IsMate {
		t.Fatalf("king has flight squares, got line %v", res.Moves)
	}
}

func TestSearchFivePlyWithInterposition(t *testing.T) {
	// 受け方が歩の合駒で粘る形。3 手では詰まず、5 手で詰む。
	pos := mustDecode(t, "9/7k1/6+R1s/9/9/7R1/9/9/K8 b Pp 1")

	res3, err := Search(pos, shogi.Black, Options{MaxDepth: 3})
	if err != nil {
		t.Fatalf("search depth 3: %v", err)
	}
	if res3.IsMate {
		t.Fatalf("no mate within 3 plies, got line %v", res3.Moves)
	}

	res5, err := Search(pos, shogi.Black, Options{MaxDepth: 5})
	if err != nil {
		t.Fatalf("search depth 5: %v", err)
	}
	if !res5.IsMate || len(res5.Moves) != 5 {
		t.Fatalf("want 5-ply mate, got IsMate=%v moves=%v", res5.IsMate, res5.Moves)
	}
	verifyMatingLine(t, pos, shogi.Black, res5.Moves)
}

func TestSearchInvalidInputs(t *testing.T) {
	t.Run("MissingKing", func(t *testing.T) {
		pos := mustDecode(t, "9/9/9/9/9/9/9/9/4K4 b - 1")
		_, err := Search(pos, shogi.Black, Options{MaxDepth: 3})
		if !errors.Is(err, shogi.ErrNoKing) {
			t.Fatalf("want ErrNoKing, got %v", err)
		}
	})
	t.Run("BadSide", func(t *testing.T) {
		pos := mustDecode(t, "4k4/9/9/9/9/9/9/9/4K4 b - 1")
		_, err := Search(pos, shogi.NoSide, Options{MaxDepth: 3})
		if !errors.Is(err, ErrInvalidSide) {
			t.Fatalf("want ErrInvalidSide, got %v", err)
		}
	})
}

func TestSearchAttackerSideNormalized(t *testing.T) {
	// 手番が受け方になっていても attacker 指定で探索できる
	pos := mustDecode(t, "7pk/7p1/8K/9/9/9/9/9/9 w G 1")
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !res.IsMate {
		t.Fatal("side normalization lost the mate")
	}
}

func TestSearchTimeout(t *testing.T) {
	// 詰まない深い探索に短い制限をかける。打ち切りは通常の結果で返る。
	pos := mustDecode(t, "9/9/9/9/4k4/9/9/9/4K4 b RG 1")
	timeout := 5 * time.Millisecond
	start := time.Now()
	res, err := Search(pos, shogi.Black, Options{MaxDepth: 11, Timeout: timeout})
	wall := time.Since(start)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.IsMate {
		t.Skipf("position solved before the deadline: %v", res.Moves)
	}
	if res.Elapsed < timeout {
		t.Errorf("elapsed %v shorter than timeout %v", res.Elapsed, timeout)
	}
	if wall > 3*time.Second {
		t.Errorf("timeout overrun too large: %v", wall)
	}
}

func TestFindCheckmateDefaults(t *testing.T) {
	pos := mustDecode(t, "7pk/7p1/8K/9/9/9/9/9/9 b G 1")
	res, err := FindCheckmate(pos, shogi.Black)
	if err != nil {
		t.Fatalf("FindCheckmate: %v", err)
	}
	if !res.IsMate {
		t.Fatal("want mate")
	}
}

func TestServiceOverrides(t *testing.T) {
	svc := NewService(Options{})
	if svc.Options().MaxDepth != DefaultMaxDepth {
		t.Fatalf("default depth: got=%d want=%d", svc.Options().MaxDepth, DefaultMaxDepth)
	}

	pos := mustDecode(t, "4k4/4R4/9/9/9/9/9/9/K8 b G 1")
	res, err := svc.SearchWith(pos, shogi.Black, Options{MaxDepth: 1})
	if err != nil {
		t.Fatalf("SearchWith: %v", err)
	}
	if res.IsMate {
		t.Fatal("depth override ignored")
	}

	res, err = svc.Search(pos, shogi.Black)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !res.IsMate {
		t.Fatal("default depth should find the 3-ply mate")
	}
}
