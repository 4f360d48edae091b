package tsume

import (
	"errors"
	"sort"
	"time"

	"tsumeshogi/internal/shogi"
)

const (
	// DefaultMaxDepth 既定の探索上限（手数）
	DefaultMaxDepth = 7
	// DefaultTimeout FindCheckmate が使う控えめな時間制限
	DefaultTimeout = 10 * time.Second

	depthCap = 31
)

// ErrInvalidSide attacker が先手でも後手でもない
var ErrInvalidSide = errors.New("tsume: invalid attacker side")

// Options 探索パラメータ。Timeout 0 は無制限。
type Options struct {
	MaxDepth int
	Timeout  time.Duration
}

// Result 詰み探索の結果。IsMate のとき Moves は奇数長の詰み手順
// （受け方の応手は代表変化ひとつ）。タイムアウトは失敗ではなく
// 「証明が見つからなかった」を意味する。
type Result struct {
	IsMate  bool
	Moves   []shogi.Move
	Nodes   int64
	Elapsed time.Duration
}

// Search attacker が MaxDepth 手以内に相手玉を詰ませられるかを調べる。
// 1手詰め、3手詰め… と奇数深さで反復深化する（詰みは必ず攻め方の
// 手で終わるので奇数手しかあり得ない）。
func Search(pos *shogi.Position, attacker shogi.Side, opts Options) (Result, error) {
	root, err := normalize(pos, attacker)
	if err != nil {
		return Result{}, err
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxDepth > depthCap {
		maxDepth = depthCap
	}

	s := &searcher{
		tt:    make(map[uint64]ttEntry, 1<<12),
		start: time.Now(),
	}
	if opts.Timeout > 0 {
		s.deadline = s.start.Add(opts.Timeout)
	}

	var line []shogi.Move
	for depth := 1; depth <= maxDepth; depth += 2 {
		line = line[:0]
		if s.searchMate(root, depth, &line) {
			return Result{
				IsMate:  true,
				Moves:   append([]shogi.Move(nil), line...),
				Nodes:   s.nodes,
				Elapsed: time.Since(s.start),
			}, nil
		}
		if s.timedOut {
			break
		}
	}
	return Result{Nodes: s.nodes, Elapsed: time.Since(s.start)}, nil
}

// normalize 前提条件の検査と手番の同期。attacker の手番でなければ
// 手番を合わせてハッシュを作り直した複製を返す。
func normalize(pos *shogi.Position, attacker shogi.Side) (*shogi.Position, error) {
	if attacker != shogi.Black && attacker != shogi.White {
		return nil, ErrInvalidSide
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	root := pos.Clone()
	if root.SideToMove != attacker {
		root.SideToMove = attacker
		root.Hash = root.CalculateHash()
	} else {
		root.EnsureHash()
	}
	return root, nil
}

type searcher struct {
	tt       map[uint64]ttEntry
	nodes    int64
	start    time.Time
	deadline time.Time
	timedOut bool
}

func (s *searcher) expired() bool {
	if s.timedOut {
		return true
	}
	if s.deadline.IsZero() {
		return false
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
		return true
	}
	return false
}

type candidate struct {
	move shogi.Move
	next *shogi.Position
}

// searchMate 攻め方の手番（OR 節点）。王手になる手だけを調べる。
// 王手でない手は詰み手順に乗らないので枝刈りしてよい。
func (s *searcher) searchMate(pos *shogi.Position, depth int, line *[]shogi.Move) bool {
	s.nodes++
	if s.expired() {
		return false
	}

	key := pos.EnsureHash() ^ modeAttack
	ttMove := shogi.Move{}
	if e, ok := s.tt[key]; ok {
		if e.depth >= depth && !e.mate {
			return false // この深さ以内では詰まないと判明済み
		}
		ttMove = e.move
	}

	result := false
	var best shogi.Move
	for _, cand := range s.checkCandidates(pos, ttMove) {
		*line = append(*line, cand.move)

		// 即詰み：受け方に応手がなければここで手順が終わる
		if cand.next.IsCheckmate() {
			result, best = true, cand.move
			break
		}
		if depth >= 3 && s.searchDefense(cand.next, depth-1, line) {
			result, best = true, cand.move
			break
		}

		*line = (*line)[:len(*line)-1]
		if s.timedOut {
			return false
		}
	}

	s.store(key, depth, result, best)
	return result
}

// searchDefense 受け方の手番（AND 節点）。合駒・取り・玉の移動を含む
// 全ての合法手について詰みが続かなければ逃れ。
func (s *searcher) searchDefense(pos *shogi.Position, depth int, line *[]shogi.Move) bool {
	s.nodes++
	if s.expired() {
		return false
	}

	key := pos.EnsureHash() ^ modeDefend
	escape := shogi.Move{}
	hasEscape := false
	if e, ok := s.tt[key]; ok {
		if e.depth >= depth && !e.mate {
			return false
		}
		escape, hasEscape = e.move, true
	}

	moves := pos.GenerateLegalMoves()
	if len(moves) == 0 {
		// 親の OR 節点の即詰み判定で拾われるはずだが、意味上は詰み
		return true
	}

	// 前回逃れられた応手を先頭へ
	if hasEscape {
		for i := range moves {
			if sameMove(moves[i], escape) {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	base := len(*line)
	for _, mv := range moves {
		np, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		*line = (*line)[:base]
		*line = append(*line, mv)
		if !s.searchMate(np, depth-1, line) {
			*line = (*line)[:base]
			if s.timedOut {
				return false
			}
			s.store(key, depth, false, mv)
			return false
		}
	}

	// 全ての応手で詰む。手順には最後に調べた変化が代表として残る。
	s.store(key, depth, true, shogi.Move{})
	return true
}

// checkCandidates 王手になる合法手とその局面を、見込みの高い順に返す
func (s *searcher) checkCandidates(pos *shogi.Position, ttMove shogi.Move) []candidate {
	defender := shogi.Opposite(pos.SideToMove)
	legal := pos.GenerateLegalMoves()
	out := make([]candidate, 0, len(legal))
	for _, mv := range legal {
		np, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		if !np.IsInCheck(defender) {
			continue
		}
		mv.Score = scoreMove(pos, mv, ttMove)
		out = append(out, candidate{move: mv, next: np})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].move.Score > out[j].move.Score
	})
	return out
}

// scoreMove 並べ替え用の軽い評価：TT の手 > 駒を取る王手 > 強い駒の王手
func scoreMove(pos *shogi.Position, mv, ttMove shogi.Move) int {
	if sameMove(mv, ttMove) {
		return 1000
	}
	score := 0
	if mv.Captured != 0 {
		score += 100 + pieceWeight(mv.Captured.BaseType())
	}
	if mv.IsDrop() {
		return score + 10
	}
	return score + pieceWeight(mv.Piece)
}

func pieceWeight(pt shogi.PieceType) int {
	switch pt {
	case shogi.PieceRook:
		return 80
	case shogi.PieceBishop:
		return 60
	case shogi.PieceGold, shogi.PieceSilver:
		return 40
	case shogi.PieceKnight, shogi.PieceLance:
		return 20
	case shogi.PiecePawn:
		return 10
	}
	return 0
}

func sameMove(a, b shogi.Move) bool {
	return a.From == b.From && a.To == b.To && a.Piece == b.Piece && a.Promote == b.Promote
}
