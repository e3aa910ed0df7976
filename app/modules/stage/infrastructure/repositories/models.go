package stagedb

import (
	"time"

	"github.com/uptrace/bun"
)

// StageContent is a per-stage dialogue definition. dialogue_json is an opaque
// blob; the only guarantee is that it parsed as JSON when it was written.
type StageContent struct {
	bun.BaseModel `bun:"table:vn_stages,alias:vs"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	StageNum     int64     `bun:"stage_num,unique,notnull" json:"stage_num"`
	DialogueJSON string    `bun:"dialogue_json,notnull" json:"dialogue_json"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
