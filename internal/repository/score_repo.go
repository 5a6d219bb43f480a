package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// ScoreValue 单项评分写入值
type ScoreValue struct {
	CriteriaID string
	Score      int
	Reflection *string
}

// SubmitScoresParams 打分提交事务入参
// 全量替换语义：本次未包含的标准项评分会被删除
type SubmitScoresParams struct {
	EventID          string
	TeamID           string
	JudgeID          string
	Values           []ScoreValue
	OverallComments  *string
	TimeSpentSeconds *int
	SubmittedAt      time.Time
	ActorUserID      *string
}

// SubmittedScoreRow 已提交评分的明细行，按 (队伍 × 评委 × 标准) 展开
// 排行榜聚合在服务层内存中完成
type SubmittedScoreRow struct {
	TeamID        string  `gorm:"column:team_id"`
	TeamName      string  `gorm:"column:team_name"`
	ProjectTitle  *string `gorm:"column:project_title"`
	JudgeID       string  `gorm:"column:judge_id"`
	CriterionID   string  `gorm:"column:criterion_id"`
	CriterionName string  `gorm:"column:criterion_name"`
	DisplayOrder  int     `gorm:"column:display_order"`
	Score         int     `gorm:"column:score"`
}

// MatrixRow 打分矩阵行（评委 × 队伍的提交汇总）
type MatrixRow struct {
	JudgeID     string     `gorm:"column:judge_id"`
	JudgeName   string     `gorm:"column:judge_name"`
	TeamID      string     `gorm:"column:team_id"`
	TeamName    string     `gorm:"column:team_name"`
	TotalScore  int        `gorm:"column:total_score"`
	SubmittedAt *time.Time `gorm:"column:submitted_at"`
}

// JudgeProgressRow 单个评委对赛事内各队伍的打分进度行
type JudgeProgressRow struct {
	TeamID       string     `gorm:"column:team_id"`
	TeamName     string     `gorm:"column:team_name"`
	ProjectTitle *string    `gorm:"column:project_title"`
	StartedAt    *time.Time `gorm:"column:started_at"`
	SubmittedAt  *time.Time `gorm:"column:submitted_at"`
	TotalScore   *int       `gorm:"column:total_score"`
}

// ScoreRepository 打分数据访问接口
type ScoreRepository interface {
	SubmitScores(ctx context.Context, params SubmitScoresParams) error
	GetSubmission(ctx context.Context, judgeID, teamID string) (*model.ScoreSubmission, error)
	SubmittedScoreRows(ctx context.Context, eventID string) ([]SubmittedScoreRow, error)
	MatrixRows(ctx context.Context, eventID string) ([]MatrixRow, error)
	JudgeProgressRows(ctx context.Context, eventID, judgeID string) ([]JudgeProgressRow, error)
}

// scoreRepo ScoreRepository 的 GORM 实现
type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

// SubmitScores 打分提交事务
// 同一事务内完成：提交头 upsert、逐项评分全量替换、总评 upsert、追加操作日志。
// (judge, team) 的唯一约束保证重复提交幂等覆盖，任一步失败整体回滚。
func (r *scoreRepo) SubmitScores(ctx context.Context, params SubmitScoresParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submission := model.ScoreSubmission{
			JudgeID:          params.JudgeID,
			EventID:          params.EventID,
			TeamID:           params.TeamID,
			SubmittedAt:      &params.SubmittedAt,
			TimeSpentSeconds: params.TimeSpentSeconds,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "judge_id"}, {Name: "team_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"submitted_at":       params.SubmittedAt,
				"time_spent_seconds": params.TimeSpentSeconds,
				"updated_at":         time.Now(),
			}),
		}).Create(&submission).Error; err != nil {
			return err
		}

		// upsert 冲突路径不回填主键，重查一次拿真实提交行
		var saved model.ScoreSubmission
		if err := tx.Where("judge_id = ? AND team_id = ?", params.JudgeID, params.TeamID).
			First(&saved).Error; err != nil {
			return err
		}

		// 全量替换：先清旧行再写新行
		if err := tx.Where("judge_id = ? AND team_id = ?", params.JudgeID, params.TeamID).
			Delete(&model.Score{}).Error; err != nil {
			return err
		}
		scores := make([]model.Score, 0, len(params.Values))
		for _, v := range params.Values {
			scores = append(scores, model.Score{
				SubmissionID:     saved.SubmissionID,
				JudgeID:          params.JudgeID,
				TeamID:           params.TeamID,
				RubricCriteriaID: v.CriteriaID,
				Score:            v.Score,
				Reflection:       v.Reflection,
			})
		}
		if err := tx.Create(&scores).Error; err != nil {
			return err
		}

		if params.OverallComments != nil {
			comment := model.JudgeComment{
				SubmissionID: saved.SubmissionID,
				JudgeID:      params.JudgeID,
				TeamID:       params.TeamID,
				Comments:     *params.OverallComments,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "judge_id"}, {Name: "team_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"submission_id": saved.SubmissionID,
					"comments":      *params.OverallComments,
					"updated_at":    time.Now(),
				}),
			}).Create(&comment).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("judge_id = ? AND team_id = ?", params.JudgeID, params.TeamID).
				Delete(&model.JudgeComment{}).Error; err != nil {
				return err
			}
		}

		var names struct {
			JudgeName string `gorm:"column:judge_name"`
			TeamName  string `gorm:"column:team_name"`
		}
		if err := tx.Raw(`
			SELECT ej.name AS judge_name, t.name AS team_name
			FROM event_judges ej, teams t
			WHERE ej.id = ? AND t.id = ?
		`, params.JudgeID, params.TeamID).Scan(&names).Error; err != nil {
			return err
		}

		total := 0
		for _, v := range params.Values {
			total += v.Score
		}
		activityType := model.ActivityScoreSubmitted
		icon := "ClipboardCheck"
		tone := "success"
		description := fmt.Sprintf("%s scored %s (%d points)", names.JudgeName, names.TeamName, total)
		entry := model.ActivityLog{
			EventID:      &params.EventID,
			UserID:       params.ActorUserID,
			Title:        "Score Submitted",
			Description:  &description,
			ActivityType: &activityType,
			IconName:     &icon,
			Tone:         &tone,
		}
		return tx.Create(&entry).Error
	})
}

func (r *scoreRepo) GetSubmission(ctx context.Context, judgeID, teamID string) (*model.ScoreSubmission, error) {
	var submission model.ScoreSubmission
	err := r.db.WithContext(ctx).
		Where("judge_id = ? AND team_id = ?", judgeID, teamID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// SubmittedScoreRows 赛事内全部已提交评分的明细行
func (r *scoreRepo) SubmittedScoreRows(ctx context.Context, eventID string) ([]SubmittedScoreRow, error) {
	var rows []SubmittedScoreRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id AS team_id,
			t.name AS team_name,
			t.project_title,
			s.judge_id,
			rc.id AS criterion_id,
			rc.name AS criterion_name,
			rc.display_order,
			s.score
		FROM scores s
		JOIN score_submissions ss ON s.submission_id = ss.id
		JOIN teams t ON s.team_id = t.id
		JOIN rubric_criteria rc ON s.rubric_criteria_id = rc.id
		WHERE ss.event_id = ? AND ss.submitted_at IS NOT NULL
		ORDER BY t.name ASC, rc.display_order ASC
	`, eventID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MatrixRows 评委 × 队伍的打分矩阵（含未提交的空档）
func (r *scoreRepo) MatrixRows(ctx context.Context, eventID string) ([]MatrixRow, error) {
	var rows []MatrixRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ej.id AS judge_id,
			ej.name AS judge_name,
			t.id AS team_id,
			t.name AS team_name,
			COALESCE((SELECT SUM(s.score) FROM scores s
			          WHERE s.judge_id = ej.id AND s.team_id = t.id), 0) AS total_score,
			ss.submitted_at
		FROM event_judges ej
		CROSS JOIN teams t
		LEFT JOIN score_submissions ss ON ss.judge_id = ej.id AND ss.team_id = t.id
		WHERE ej.event_id = ? AND t.event_id = ej.event_id
		ORDER BY ej.name ASC, t.name ASC
	`, eventID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// JudgeProgressRows 评委视角的各队伍打分进度
func (r *scoreRepo) JudgeProgressRows(ctx context.Context, eventID, judgeID string) ([]JudgeProgressRow, error) {
	var rows []JudgeProgressRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id AS team_id,
			t.name AS team_name,
			t.project_title,
			ss.started_at,
			ss.submitted_at,
			(SELECT SUM(s.score) FROM scores s
			 WHERE s.judge_id = ss.judge_id AND s.team_id = t.id) AS total_score
		FROM teams t
		LEFT JOIN score_submissions ss ON ss.team_id = t.id AND ss.judge_id = ?
		WHERE t.event_id = ?
		ORDER BY t.presentation_order ASC NULLS LAST, t.name ASC
	`, judgeID, eventID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
