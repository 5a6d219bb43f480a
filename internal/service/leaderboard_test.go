package service

import (
	"testing"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

func rosterTeam(id, name string) model.Team {
	return model.Team{TeamID: id, Name: name}
}

func scoreRow(teamID, teamName, judgeID, critID, critName string, order, score int) repository.SubmittedScoreRow {
	return repository.SubmittedScoreRow{
		TeamID:        teamID,
		TeamName:      teamName,
		JudgeID:       judgeID,
		CriterionID:   critID,
		CriterionName: critName,
		DisplayOrder:  order,
		Score:         score,
	}
}

func TestBuildLeaderboard_TotalsAndAverage(t *testing.T) {
	roster := []model.Team{rosterTeam("team-a", "Alpha")}
	// Alpha: 评委1 共 40 分，评委2 共 35 分 → total 75, avg 37.5
	rows := []repository.SubmittedScoreRow{
		scoreRow("team-a", "Alpha", "j1", "c1", "沟通表达", 1, 22),
		scoreRow("team-a", "Alpha", "j1", "c2", "投资意愿", 2, 18),
		scoreRow("team-a", "Alpha", "j2", "c1", "沟通表达", 1, 20),
		scoreRow("team-a", "Alpha", "j2", "c2", "投资意愿", 2, 15),
	}

	board := BuildLeaderboard(roster, rows)
	if len(board) != 1 {
		t.Fatalf("期望 1 行，得到 %d 行", len(board))
	}
	entry := board[0]
	if entry.TotalScore != 75 {
		t.Errorf("期望 total=75，得到 %d", entry.TotalScore)
	}
	if entry.JudgesScored != 2 {
		t.Errorf("期望 2 位评委，得到 %d", entry.JudgesScored)
	}
	if entry.AverageScore == nil || *entry.AverageScore != 37.5 {
		t.Errorf("期望 avg=37.5，得到 %v", entry.AverageScore)
	}
}

func TestBuildLeaderboard_AverageRounding(t *testing.T) {
	roster := []model.Team{rosterTeam("team-a", "Alpha")}
	// 3 位评委共 50 分 → 50/3 = 16.666... → 16.67
	rows := []repository.SubmittedScoreRow{
		scoreRow("team-a", "Alpha", "j1", "c1", "沟通表达", 1, 20),
		scoreRow("team-a", "Alpha", "j2", "c1", "沟通表达", 1, 15),
		scoreRow("team-a", "Alpha", "j3", "c1", "沟通表达", 1, 15),
	}

	board := BuildLeaderboard(roster, rows)
	if board[0].AverageScore == nil || *board[0].AverageScore != 16.67 {
		t.Errorf("期望 avg=16.67，得到 %v", board[0].AverageScore)
	}
}

func TestBuildLeaderboard_RankAndTieBreak(t *testing.T) {
	roster := []model.Team{
		rosterTeam("team-b", "Beta"),
		rosterTeam("team-c", "Charlie"),
		rosterTeam("team-d", "Delta"),
	}
	rows := []repository.SubmittedScoreRow{
		scoreRow("team-b", "Beta", "j1", "c1", "沟通表达", 1, 30),
		scoreRow("team-c", "Charlie", "j1", "c1", "沟通表达", 1, 50),
		// Delta 与 Beta 同分，队名靠后
		scoreRow("team-d", "Delta", "j1", "c1", "沟通表达", 1, 30),
	}

	board := BuildLeaderboard(roster, rows)
	if len(board) != 3 {
		t.Fatalf("期望 3 行，得到 %d 行", len(board))
	}

	expected := []struct {
		rank int
		name string
	}{
		{1, "Charlie"},
		{2, "Beta"},
		{3, "Delta"},
	}
	for i, want := range expected {
		if board[i].Rank != want.rank || board[i].Name != want.name {
			t.Errorf("第 %d 行期望 rank=%d name=%s，得到 rank=%d name=%s",
				i, want.rank, want.name, board[i].Rank, board[i].Name)
		}
	}
}

func TestBuildLeaderboard_UnscoredTeamsIncluded(t *testing.T) {
	roster := []model.Team{
		rosterTeam("team-a", "Alpha"),
		rosterTeam("team-b", "Beta"),
		rosterTeam("team-c", "Charlie"),
	}
	// 只有 Alpha 收到评分，Beta/Charlie 也必须各占一行
	rows := []repository.SubmittedScoreRow{
		scoreRow("team-a", "Alpha", "j1", "c1", "沟通表达", 1, 40),
	}

	board := BuildLeaderboard(roster, rows)
	if len(board) != 3 {
		t.Fatalf("期望每支队伍一行（3 行），得到 %d 行", len(board))
	}
	if board[0].Name != "Alpha" || board[0].Rank != 1 {
		t.Errorf("有分队伍应排在前，得到第一行: %+v", board[0])
	}

	// 无分队伍按队名升序垫底，字段为零值
	expected := []struct {
		rank int
		name string
	}{
		{2, "Beta"},
		{3, "Charlie"},
	}
	for i, want := range expected {
		entry := board[i+1]
		if entry.Rank != want.rank || entry.Name != want.name {
			t.Errorf("期望 rank=%d name=%s，得到 rank=%d name=%s",
				want.rank, want.name, entry.Rank, entry.Name)
		}
		if entry.TotalScore != 0 || entry.JudgesScored != 0 {
			t.Errorf("%s 无评分应为 total=0 judges=0，得到 total=%d judges=%d",
				entry.Name, entry.TotalScore, entry.JudgesScored)
		}
		if entry.AverageScore != nil {
			t.Errorf("%s 无评分时均分应为空，得到 %v", entry.Name, *entry.AverageScore)
		}
	}
}

func TestBuildLeaderboard_CriteriaBreakdown(t *testing.T) {
	roster := []model.Team{rosterTeam("team-a", "Alpha")}
	rows := []repository.SubmittedScoreRow{
		scoreRow("team-a", "Alpha", "j1", "c2", "投资意愿", 2, 18),
		scoreRow("team-a", "Alpha", "j1", "c1", "沟通表达", 1, 22),
		scoreRow("team-a", "Alpha", "j2", "c1", "沟通表达", 1, 20),
	}

	board := BuildLeaderboard(roster, rows)
	breakdown := board[0].CriteriaBreakdown
	if len(breakdown) != 2 {
		t.Fatalf("期望 2 条标准聚合，得到 %d 条", len(breakdown))
	}

	// 按 display_order 排序
	if breakdown[0].CriterionID != "c1" || breakdown[1].CriterionID != "c2" {
		t.Errorf("标准聚合应按展示顺序排列，得到: %s, %s",
			breakdown[0].CriterionID, breakdown[1].CriterionID)
	}
	if breakdown[0].TotalScore != 42 {
		t.Errorf("期望 c1 合计 42，得到 %d", breakdown[0].TotalScore)
	}
	// c1 均分按打分评委数（2 人）折算
	if breakdown[0].AverageScore == nil || *breakdown[0].AverageScore != 21.0 {
		t.Errorf("期望 c1 均分 21，得到 %v", breakdown[0].AverageScore)
	}
}

func TestBuildLeaderboard_Empty(t *testing.T) {
	board := BuildLeaderboard(nil, nil)
	if len(board) != 0 {
		t.Errorf("空输入应返回空榜，得到 %d 行", len(board))
	}
}
