package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// TeamScoreRow 队伍详情评分细目行（评委 × 标准）
type TeamScoreRow struct {
	JudgeName       string    `gorm:"column:judge_name"`
	CriterionName   string    `gorm:"column:criterion_name"`
	ShortName       *string   `gorm:"column:short_name"`
	Score           int       `gorm:"column:score"`
	Reflection      *string   `gorm:"column:reflection"`
	SubmittedAt     time.Time `gorm:"column:submitted_at"`
	OverallComments *string   `gorm:"column:overall_comments"`
	DisplayOrder    int       `gorm:"column:display_order"`
}

// TeamRepository 队伍数据访问接口
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, member *model.TeamMember) error
	RemoveMember(ctx context.Context, teamID, memberID string) error
	ScoreDetails(ctx context.Context, teamID string) ([]TeamScoreRow, error)
}

// teamRepo TeamRepository 的 GORM 实现
type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo 创建 TeamRepository 实例
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByEvent 按出场顺序返回赛事下全部队伍，未排序的排在末尾
func (r *teamRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("event_id = ?", eventID).
		Order("presentation_order ASC NULLS LAST").
		Order("name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	team.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Team{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Team{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepo) AddMember(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *teamRepo) RemoveMember(ctx context.Context, teamID, memberID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", memberID, teamID).
		Delete(&model.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ScoreDetails 队伍评分细目，只取已提交的评分
func (r *teamRepo) ScoreDetails(ctx context.Context, teamID string) ([]TeamScoreRow, error) {
	var rows []TeamScoreRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ej.name AS judge_name,
			rc.name AS criterion_name,
			rc.short_name,
			rc.display_order,
			s.score,
			s.reflection,
			ss.submitted_at,
			jc.comments AS overall_comments
		FROM scores s
		JOIN score_submissions ss ON s.submission_id = ss.id
		JOIN event_judges ej ON s.judge_id = ej.id
		JOIN rubric_criteria rc ON s.rubric_criteria_id = rc.id
		LEFT JOIN judge_comments jc ON jc.judge_id = s.judge_id AND jc.team_id = s.team_id
		WHERE s.team_id = ? AND ss.submitted_at IS NOT NULL
		ORDER BY ej.name ASC, rc.display_order ASC
	`, teamID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
