package model

import "time"

// ── 赛事状态 ──

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// ── 评审阶段 ──

const (
	PhaseNotStarted = "not-started"
	PhaseInProgress = "in-progress"
	PhaseEnded      = "ended"
)

// ValidJudgingPhases 合法的评审阶段集合
var ValidJudgingPhases = map[string]bool{
	PhaseNotStarted: true,
	PhaseInProgress: true,
	PhaseEnded:      true,
}

// ValidEventTypes 合法的赛事类型集合
var ValidEventTypes = map[string]bool{
	"aggies-invent":          true,
	"problems-worth-solving": true,
	"hackathon":              true,
	"design_competition":     true,
	"pitch_competition":      true,
}

// Event 赛事表 — 对应 events
// current_active_team_id 指向当前"登台"队伍，同一赛事最多一支
type Event struct {
	EventID              string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                 string     `gorm:"type:varchar(255);uniqueIndex;not null"                   json:"name"`
	Description          *string    `gorm:"type:text"                                                json:"description,omitempty"`
	EventType            string     `gorm:"type:varchar(50);not null"                                json:"event_type"`
	Status               string     `gorm:"type:varchar(20);default:'upcoming'"                      json:"status"`
	Location             *string    `gorm:"type:varchar(255)"                                        json:"location,omitempty"`
	StartDate            time.Time  `gorm:"not null"                                                 json:"start_date"`
	EndDate              time.Time  `gorm:"not null"                                                 json:"end_date"`
	RegistrationDeadline *time.Time `gorm:""                                                         json:"registration_deadline,omitempty"`
	MaxTeamSize          int        `gorm:"default:4"                                                json:"max_team_size"`
	MinTeamSize          int        `gorm:"default:1"                                                json:"min_team_size"`
	MaxTeams             *int       `gorm:""                                                         json:"max_teams,omitempty"`
	SponsorID            *string    `gorm:"type:uuid"                                                json:"sponsor_id,omitempty"`
	JudgingPhase         string     `gorm:"type:varchar(20);default:'not-started'"                   json:"judging_phase"`
	CurrentActiveTeamID  *string    `gorm:"type:uuid"                                                json:"current_active_team_id,omitempty"`
	BaseModel

	// 关联
	Sponsor *Sponsor `gorm:"foreignKey:SponsorID;references:SponsorID" json:"sponsor,omitempty"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
