package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/config"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// testConfig 单元测试用配置
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "unit-test-secret-0123456789",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Judging: config.JudgingConfig{
			PresenceWindow: 2 * time.Minute,
		},
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = &at
	return nil
}

// ── Mock SponsorRepository ──

type mockSponsorRepo struct {
	sponsors map[string]*model.Sponsor
}

func newMockSponsorRepo() *mockSponsorRepo {
	return &mockSponsorRepo{sponsors: make(map[string]*model.Sponsor)}
}

func (m *mockSponsorRepo) Create(_ context.Context, sponsor *model.Sponsor) error {
	if sponsor.SponsorID == "" {
		sponsor.SponsorID = "sponsor-" + sponsor.Name
	}
	for _, existing := range m.sponsors {
		if existing.Name == sponsor.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.sponsors[sponsor.SponsorID] = sponsor
	return nil
}

func (m *mockSponsorRepo) GetByID(_ context.Context, id string) (*model.Sponsor, error) {
	if s, ok := m.sponsors[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSponsorRepo) List(_ context.Context) ([]model.Sponsor, error) {
	var result []model.Sponsor
	for _, s := range m.sponsors {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSponsorRepo) Update(_ context.Context, sponsor *model.Sponsor) error {
	m.sponsors[sponsor.SponsorID] = sponsor
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events   map[string]*model.Event
	counts   map[string]repository.EventCounts
	insights *repository.EventInsights

	// SetActiveTeam 的调用记录
	activeTeamCalls []activeTeamCall
}

type activeTeamCall struct {
	eventID string
	teamID  *string
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events: make(map[string]*model.Event),
		counts: make(map[string]repository.EventCounts),
	}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = "event-" + event.Name
	}
	for _, existing := range m.events {
		if existing.Name == event.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, filter repository.EventFilter) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) CountsByEvent(_ context.Context, ids []string) (map[string]repository.EventCounts, error) {
	result := make(map[string]repository.EventCounts)
	for _, id := range ids {
		result[id] = m.counts[id]
	}
	return result, nil
}

func (m *mockEventRepo) UpdateJudgingPhase(_ context.Context, id, phase string) error {
	e, ok := m.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.JudgingPhase = phase
	return nil
}

func (m *mockEventRepo) SetActiveTeam(_ context.Context, eventID string, teamID *string, _ *string) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.CurrentActiveTeamID = teamID
	m.activeTeamCalls = append(m.activeTeamCalls, activeTeamCall{eventID: eventID, teamID: teamID})
	return nil
}

func (m *mockEventRepo) Insights(_ context.Context, _ string) (*repository.EventInsights, error) {
	if m.insights != nil {
		return m.insights, nil
	}
	return &repository.EventInsights{}, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams        map[string]*model.Team
	scoreDetails []repository.TeamScoreRow
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]*model.Team)}
}

func (m *mockTeamRepo) Create(_ context.Context, team *model.Team) error {
	if team.TeamID == "" {
		team.TeamID = "team-" + team.Name
	}
	for _, existing := range m.teams {
		if existing.EventID == team.EventID && existing.Name == team.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id string) (*model.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) ListByEvent(_ context.Context, eventID string) ([]model.Team, error) {
	var result []model.Team
	for _, t := range m.teams {
		if t.EventID == eventID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeamRepo) Update(_ context.Context, team *model.Team) error {
	m.teams[team.TeamID] = team
	return nil
}

func (m *mockTeamRepo) UpdateStatus(_ context.Context, id, status string) error {
	t, ok := m.teams[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	return nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.teams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teams, id)
	return nil
}

func (m *mockTeamRepo) AddMember(_ context.Context, member *model.TeamMember) error {
	t, ok := m.teams[member.TeamID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if member.MemberID == "" {
		member.MemberID = fmt.Sprintf("member-%d", len(t.Members)+1)
	}
	t.Members = append(t.Members, *member)
	return nil
}

func (m *mockTeamRepo) RemoveMember(_ context.Context, teamID, memberID string) error {
	t, ok := m.teams[teamID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range t.Members {
		if t.Members[i].MemberID == memberID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTeamRepo) ScoreDetails(_ context.Context, _ string) ([]repository.TeamScoreRow, error) {
	return m.scoreDetails, nil
}

// ── Mock JudgeRepository ──

type mockJudgeRepo struct {
	judges       map[string]*model.EventJudge
	sessions     map[string]*model.JudgeSession
	presenceRows []repository.JudgePresenceRow
	nextSession  int
}

func newMockJudgeRepo() *mockJudgeRepo {
	return &mockJudgeRepo{
		judges:   make(map[string]*model.EventJudge),
		sessions: make(map[string]*model.JudgeSession),
	}
}

func (m *mockJudgeRepo) Assign(_ context.Context, judge *model.EventJudge) error {
	if judge.JudgeID == "" {
		judge.JudgeID = "judge-" + judge.Name
	}
	for _, existing := range m.judges {
		if existing.EventID == judge.EventID && existing.Name == judge.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	judge.AssignedAt = time.Now()
	m.judges[judge.JudgeID] = judge
	return nil
}

func (m *mockJudgeRepo) GetByID(_ context.Context, id string) (*model.EventJudge, error) {
	if j, ok := m.judges[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJudgeRepo) GetByEventAndUser(_ context.Context, eventID, userID string) (*model.EventJudge, error) {
	for _, j := range m.judges {
		if j.EventID == eventID && j.UserID == userID {
			return j, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJudgeRepo) ListByEvent(_ context.Context, eventID string) ([]model.EventJudge, error) {
	var result []model.EventJudge
	for _, j := range m.judges {
		if j.EventID == eventID {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (m *mockJudgeRepo) ListByUser(_ context.Context, userID string) ([]model.EventJudge, error) {
	var result []model.EventJudge
	for _, j := range m.judges {
		if j.UserID == userID {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (m *mockJudgeRepo) Remove(_ context.Context, eventID, judgeID string) error {
	j, ok := m.judges[judgeID]
	if !ok || j.EventID != eventID {
		return gorm.ErrRecordNotFound
	}
	delete(m.judges, judgeID)
	return nil
}

func (m *mockJudgeRepo) FindOpenSession(_ context.Context, eventID, judgeID string) (*model.JudgeSession, error) {
	var latest *model.JudgeSession
	for _, s := range m.sessions {
		if s.EventID != eventID || s.JudgeID != judgeID || s.LoggedOutAt != nil {
			continue
		}
		if latest == nil || s.LoggedInAt.After(latest.LoggedInAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockJudgeRepo) CreateSession(_ context.Context, session *model.JudgeSession) error {
	if session.SessionID == "" {
		m.nextSession++
		session.SessionID = fmt.Sprintf("session-%d", m.nextSession)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockJudgeRepo) TouchSession(_ context.Context, sessionID string, at time.Time) error {
	s, ok := m.sessions[sessionID]
	if !ok || s.LoggedOutAt != nil {
		return gorm.ErrRecordNotFound
	}
	s.LastActivity = at
	return nil
}

func (m *mockJudgeRepo) CloseSessions(_ context.Context, eventID, judgeID string, at time.Time) error {
	for _, s := range m.sessions {
		if s.EventID == eventID && s.JudgeID == judgeID && s.LoggedOutAt == nil {
			closed := at
			s.LoggedOutAt = &closed
		}
	}
	return nil
}

func (m *mockJudgeRepo) PresenceRows(_ context.Context, _ string) ([]repository.JudgePresenceRow, error) {
	return m.presenceRows, nil
}

// ── Mock RubricRepository ──

type mockRubricRepo struct {
	criteria []model.RubricCriterion
}

func newMockRubricRepo() *mockRubricRepo {
	return &mockRubricRepo{}
}

func (m *mockRubricRepo) List(_ context.Context) ([]model.RubricCriterion, error) {
	return m.criteria, nil
}

func (m *mockRubricRepo) GetByID(_ context.Context, id string) (*model.RubricCriterion, error) {
	for i := range m.criteria {
		if m.criteria[i].CriterionID == id {
			return &m.criteria[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ScoreRepository ──

type mockScoreRepo struct {
	submitted    []repository.SubmitScoresParams
	submissions  map[string]*model.ScoreSubmission // "judgeID:teamID"
	scoreRows    []repository.SubmittedScoreRow
	matrixRows   []repository.MatrixRow
	progressRows []repository.JudgeProgressRow
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{submissions: make(map[string]*model.ScoreSubmission)}
}

func (m *mockScoreRepo) SubmitScores(_ context.Context, params repository.SubmitScoresParams) error {
	m.submitted = append(m.submitted, params)
	key := params.JudgeID + ":" + params.TeamID
	submittedAt := params.SubmittedAt
	m.submissions[key] = &model.ScoreSubmission{
		SubmissionID: "submission-" + key,
		JudgeID:      params.JudgeID,
		EventID:      params.EventID,
		TeamID:       params.TeamID,
		SubmittedAt:  &submittedAt,
	}
	return nil
}

func (m *mockScoreRepo) GetSubmission(_ context.Context, judgeID, teamID string) (*model.ScoreSubmission, error) {
	if s, ok := m.submissions[judgeID+":"+teamID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScoreRepo) SubmittedScoreRows(_ context.Context, _ string) ([]repository.SubmittedScoreRow, error) {
	return m.scoreRows, nil
}

func (m *mockScoreRepo) MatrixRows(_ context.Context, _ string) ([]repository.MatrixRow, error) {
	return m.matrixRows, nil
}

func (m *mockScoreRepo) JudgeProgressRows(_ context.Context, _, _ string) ([]repository.JudgeProgressRow, error) {
	return m.progressRows, nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	entries []model.ActivityLog
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Append(_ context.Context, entry *model.ActivityLog) error {
	if entry.ActivityID == "" {
		entry.ActivityID = fmt.Sprintf("activity-%d", len(m.entries)+1)
	}
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityRepo) List(_ context.Context, eventID string, _, _ int) ([]model.ActivityLog, int64, error) {
	var result []model.ActivityLog
	for _, e := range m.entries {
		if eventID != "" && (e.EventID == nil || *e.EventID != eventID) {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

// ── 聚合 ──

type mocks struct {
	user     *mockUserRepo
	sponsor  *mockSponsorRepo
	event    *mockEventRepo
	team     *mockTeamRepo
	judge    *mockJudgeRepo
	rubric   *mockRubricRepo
	score    *mockScoreRepo
	activity *mockActivityRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		user:     newMockUserRepo(),
		sponsor:  newMockSponsorRepo(),
		event:    newMockEventRepo(),
		team:     newMockTeamRepo(),
		judge:    newMockJudgeRepo(),
		rubric:   newMockRubricRepo(),
		score:    newMockScoreRepo(),
		activity: newMockActivityRepo(),
	}
	repo := &repository.Repository{
		User:     m.user,
		Sponsor:  m.sponsor,
		Event:    m.event,
		Team:     m.team,
		Judge:    m.judge,
		Rubric:   m.rubric,
		Score:    m.score,
		Activity: m.activity,
	}
	return repo, m
}
