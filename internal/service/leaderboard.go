package service

import (
	"math"
	"sort"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// BuildLeaderboard 把赛事队伍名册与已提交评分明细聚合成排行榜
// 规则：
//   - 名册中的每支队伍都占一行，尚无评分的队伍 total=0、judges_scored=0、average 为空
//   - 只统计已提交的评分（输入行已按此过滤）
//   - total = 全部评委全部标准分值之和
//   - average = total / 打分评委数，保留两位小数；无人打分时为空
//   - 按 total 降序排名；同分按队名升序，名次依序递增（不并列）
func BuildLeaderboard(roster []model.Team, rows []repository.SubmittedScoreRow) []dto.LeaderboardRow {
	type criterionAgg struct {
		name  string
		order int
		total int
	}
	type teamAgg struct {
		name         string
		projectTitle *string
		total        int
		judges       map[string]bool
		criteria     map[string]*criterionAgg
	}

	teams := make(map[string]*teamAgg, len(roster))
	for i := range roster {
		teams[roster[i].TeamID] = &teamAgg{
			name:         roster[i].Name,
			projectTitle: roster[i].ProjectTitle,
			judges:       make(map[string]bool),
			criteria:     make(map[string]*criterionAgg),
		}
	}
	for _, row := range rows {
		agg, ok := teams[row.TeamID]
		if !ok {
			agg = &teamAgg{
				name:         row.TeamName,
				projectTitle: row.ProjectTitle,
				judges:       make(map[string]bool),
				criteria:     make(map[string]*criterionAgg),
			}
			teams[row.TeamID] = agg
		}
		agg.total += row.Score
		agg.judges[row.JudgeID] = true

		crit, ok := agg.criteria[row.CriterionID]
		if !ok {
			crit = &criterionAgg{name: row.CriterionName, order: row.DisplayOrder}
			agg.criteria[row.CriterionID] = crit
		}
		crit.total += row.Score
	}

	result := make([]dto.LeaderboardRow, 0, len(teams))
	for teamID, agg := range teams {
		judgesScored := len(agg.judges)
		entry := dto.LeaderboardRow{
			TeamID:       teamID,
			Name:         agg.name,
			ProjectTitle: agg.projectTitle,
			TotalScore:   agg.total,
			JudgesScored: judgesScored,
		}
		if judgesScored > 0 {
			avg := round2(float64(agg.total) / float64(judgesScored))
			entry.AverageScore = &avg
		}

		breakdown := make([]dto.CriterionBreakdown, 0, len(agg.criteria))
		for critID, crit := range agg.criteria {
			item := dto.CriterionBreakdown{
				CriterionID:   critID,
				CriterionName: crit.name,
				TotalScore:    crit.total,
			}
			if judgesScored > 0 {
				avg := round2(float64(crit.total) / float64(judgesScored))
				item.AverageScore = &avg
			}
			breakdown = append(breakdown, item)
		}
		sort.Slice(breakdown, func(i, j int) bool {
			return agg.criteria[breakdown[i].CriterionID].order < agg.criteria[breakdown[j].CriterionID].order
		})
		entry.CriteriaBreakdown = breakdown

		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalScore != result[j].TotalScore {
			return result[i].TotalScore > result[j].TotalScore
		}
		return result[i].Name < result[j].Name
	})
	for i := range result {
		result[i].Rank = i + 1
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
