package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

func setupTeamFixture(t *testing.T) (TeamService, *mocks) {
	t.Helper()
	repo, m := newMockRepository()

	m.event.events["event-1"] = &model.Event{
		EventID:     "event-1",
		Name:        "测试赛事",
		EventType:   "hackathon",
		MaxTeamSize: 2,
	}
	m.team.teams["team-1"] = &model.Team{
		TeamID:  "team-1",
		EventID: "event-1",
		Name:    "Alpha",
		Status:  model.TeamStatusWaiting,
	}

	svc := NewTeamService(repo, zap.NewNop())
	return svc, m
}

func TestTeamCreate(t *testing.T) {
	svc, _ := setupTeamFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, "event-1", &dto.CreateTeamRequest{Name: "Beta"})
	if err != nil {
		t.Fatalf("创建队伍失败: %v", err)
	}
	if resp.Status != model.TeamStatusWaiting {
		t.Errorf("新队伍状态应为 waiting，得到: %s", resp.Status)
	}

	// 同赛事重名
	if _, err := svc.Create(ctx, "event-1", &dto.CreateTeamRequest{Name: "Alpha"}); !errors.Is(err, ErrTeamNameTaken) {
		t.Errorf("重名应拒绝，得到: %v", err)
	}

	// 赛事不存在
	if _, err := svc.Create(ctx, "event-ghost", &dto.CreateTeamRequest{Name: "Gamma"}); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("不存在的赛事应拒绝，得到: %v", err)
	}
}

func TestTeamUpdateStatus_Invalid(t *testing.T) {
	svc, _ := setupTeamFixture(t)

	err := svc.UpdateStatus(context.Background(), "team-1", &dto.UpdateTeamStatusRequest{Status: "flying"})
	if !errors.Is(err, ErrTeamStatusInvalid) {
		t.Errorf("未知状态应拒绝，得到: %v", err)
	}
}

func TestTeamAddMember_SizeLimit(t *testing.T) {
	svc, _ := setupTeamFixture(t)
	ctx := context.Background()

	for _, name := range []string{"成员一", "成员二"} {
		if _, err := svc.AddMember(ctx, "team-1", &dto.AddTeamMemberRequest{Name: name}); err != nil {
			t.Fatalf("添加成员失败: %v", err)
		}
	}

	// 第三位超出 max_team_size=2
	_, err := svc.AddMember(ctx, "team-1", &dto.AddTeamMemberRequest{Name: "成员三"})
	if !errors.Is(err, ErrTeamMemberLimit) {
		t.Errorf("超出队伍人数上限应拒绝，得到: %v", err)
	}
}

func TestTeamRemoveMember(t *testing.T) {
	svc, _ := setupTeamFixture(t)
	ctx := context.Background()

	member, err := svc.AddMember(ctx, "team-1", &dto.AddTeamMemberRequest{Name: "成员一"})
	if err != nil {
		t.Fatalf("添加成员失败: %v", err)
	}

	if err := svc.RemoveMember(ctx, "team-1", member.ID); err != nil {
		t.Fatalf("移除成员失败: %v", err)
	}
	if err := svc.RemoveMember(ctx, "team-1", member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("重复移除应报成员不存在，得到: %v", err)
	}
}

func TestTeamDetail_ScoreRows(t *testing.T) {
	svc, m := setupTeamFixture(t)

	short := "沟通"
	comments := "Great demo"
	m.team.scoreDetails = []repository.TeamScoreRow{
		{
			JudgeName:       "评委一号",
			CriterionName:   "沟通表达",
			ShortName:       &short,
			Score:           22,
			SubmittedAt:     time.Now(),
			OverallComments: &comments,
		},
	}

	detail, err := svc.GetDetail(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("查询队伍详情失败: %v", err)
	}
	if len(detail.Scores) != 1 {
		t.Fatalf("期望 1 条评分细目，得到 %d 条", len(detail.Scores))
	}
	row := detail.Scores[0]
	if row.JudgeName != "评委一号" || row.Score != 22 || row.SubmittedAt == "" {
		t.Error("评分细目字段不符")
	}
	if row.OverallComments == nil || *row.OverallComments != "Great demo" {
		t.Error("总评未透传")
	}
}
