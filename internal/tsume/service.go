package tsume

import "tsumeshogi/internal/shogi"

// FindCheckmate 既定の深さと控えめな時間制限で詰みを探す入口
func FindCheckmate(pos *shogi.Position, attacker shogi.Side) (Result, error) {
	return Search(pos, attacker, Options{MaxDepth: DefaultMaxDepth, Timeout: DefaultTimeout})
}

// Service 既定の探索設定を保持する薄いラッパ。呼び出しごとに
// Options を組み立てたくない利用者（HTTP 層など）向け。
type Service struct {
	opts Options
}

func NewService(opts Options) *Service {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Service{opts: opts}
}

// Options 現在の既定値
func (s *Service) Options() Options { return s.opts }

// Search 既定値で探索する。opts の一部だけ上書きしたいときは
// SearchWith を使う。
func (s *Service) Search(pos *shogi.Position, attacker shogi.Side) (Result, error) {
	return Search(pos, attacker, s.opts)
}

// SearchWith 呼び出し単位で設定を上書きして探索する（0 値は既定値のまま）
func (s *Service) SearchWith(pos *shogi.Position, attacker shogi.Side, opts Options) (Result, error) {
	merged := s.opts
	if opts.MaxDepth > 0 {
		merged.MaxDepth = opts.MaxDepth
	}
	if opts.Timeout > 0 {
		merged.Timeout = opts.Timeout
	}
	return Search(pos, attacker, merged)
}

// FindOneMoveCheckmate 一手詰め検出のラッパ
func (s *Service) FindOneMoveCheckmate(pos *shogi.Position, attacker shogi.Side) *shogi.Move {
	return FindOneMoveCheckmate(pos, attacker)
}
