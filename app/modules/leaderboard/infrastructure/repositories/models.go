package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// Leader is a persisted player-progress record keyed by username.
type Leader struct {
	bun.BaseModel `bun:"table:leaders,alias:l"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Username   string    `bun:"username,unique,notnull" json:"username"`
	Score      int64     `bun:"score,notnull,default:0" json:"score"`
	Stage      int64     `bun:"stage,notnull,default:0" json:"stage"`
	LastUpdate time.Time `bun:"last_update,notnull,default:current_timestamp" json:"last_update"`
}
