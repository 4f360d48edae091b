package problem

import (
	"time"

	"tsumeshogi/internal/shogi"
)

// State 出題中の一問。Pos は現在の局面（ユーザーの着手で進む）。
type State struct {
	ID        string
	Start     *shogi.Position // 出題時の局面
	Pos       *shogi.Position
	Attacker  shogi.Side
	CreatedAt time.Time
	UpdatedAt time.Time
}
