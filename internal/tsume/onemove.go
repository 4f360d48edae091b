package tsume

import "tsumeshogi/internal/shogi"

// FindOneMoveCheckmate attacker の一手詰めを探す。合法手（打つ手を含む）を
// 順に試し、指した後に相手が王手かつ応手なしになる最初の手を返す。
// なければ nil。生成順は固定なので同じ入力には同じ手を返す。
func FindOneMoveCheckmate(pos *shogi.Position, attacker shogi.Side) *shogi.Move {
	root, err := normalize(pos, attacker)
	if err != nil {
		return nil
	}
	for _, mv := range root.GenerateLegalMoves() {
		np, ok := root.ApplyMove(mv)
		if !ok {
			continue
		}
		if np.IsCheckmate() {
			m := mv
			return &m
		}
	}
	return nil
}
