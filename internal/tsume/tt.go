package tsume

import "tsumeshogi/internal/shogi"

// 攻め方 / 受け方の節点を同じ局面ハッシュで区別するための定数
const (
	modeAttack uint64 = 0xA5A5A5A5A5A5A5A5
	modeDefend uint64 = 0x5A5A5A5A5A5A5A5A
)

// ttEntry 1 回の探索内だけで生きる置換表の項目。
// mate=false の項目は「depth 以内では詰まない」の枝刈りに、
// move は並べ替え（攻め方）・逃れ筋の先行試行（受け方）に使う。
// mate=true の項目は手順復元が要るため枝刈りには使わない。
type ttEntry struct {
	depth int
	mate  bool
	move  shogi.Move
}

func (s *searcher) store(key uint64, depth int, mate bool, mv shogi.Move) {
	if e, ok := s.tt[key]; ok && e.depth > depth {
		return
	}
	s.tt[key] = ttEntry{depth: depth, mate: mate, move: mv}
}
