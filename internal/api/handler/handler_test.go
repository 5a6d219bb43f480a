package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}

// ── Mock EventService ──

type mockEventService struct {
	createResult *dto.EventResponse
	createErr    error
	getResult    *dto.EventResponse
	getErr       error
	listResult   []dto.EventResponse
	listErr      error
	updateResult *dto.EventResponse
	updateErr    error
	deleteErr    error
	phaseErr     error
	activeErr    error
	insights     *dto.EventInsightsResponse
	insightsErr  error
	status       *dto.ModeratorStatusResponse
	statusErr    error
}

func (m *mockEventService) Create(_ context.Context, _ *dto.CreateEventRequest, _ string) (*dto.EventResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEventService) GetByID(_ context.Context, _ string) (*dto.EventResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockEventService) List(_ context.Context, _ *dto.ListEventsRequest, _, _ string) ([]dto.EventResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEventService) Update(_ context.Context, _ string, _ *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockEventService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockEventService) UpdateJudgingPhase(_ context.Context, _ string, _ *dto.UpdateJudgingPhaseRequest, _ string) error {
	return m.phaseErr
}
func (m *mockEventService) SetActiveTeam(_ context.Context, _ string, _ *dto.UpdateActiveTeamRequest, _ string) error {
	return m.activeErr
}
func (m *mockEventService) Insights(_ context.Context, _ string) (*dto.EventInsightsResponse, error) {
	return m.insights, m.insightsErr
}
func (m *mockEventService) ModeratorStatus(_ context.Context, _ string) (*dto.ModeratorStatusResponse, error) {
	return m.status, m.statusErr
}

// ── Mock ScoreService ──

type mockScoreService struct {
	criteria    []dto.RubricCriterionResponse
	criteriaErr error
	submitErr   error
	leaderboard []dto.LeaderboardRow
	boardErr    error
	matrix      []dto.ScoringMatrixCell
	matrixErr   error
}

func (m *mockScoreService) ListCriteria(_ context.Context) ([]dto.RubricCriterionResponse, error) {
	return m.criteria, m.criteriaErr
}
func (m *mockScoreService) Submit(_ context.Context, _ *dto.SubmitScoresRequest, _, _ string) error {
	return m.submitErr
}
func (m *mockScoreService) Leaderboard(_ context.Context, _ string) ([]dto.LeaderboardRow, error) {
	return m.leaderboard, m.boardErr
}
func (m *mockScoreService) Matrix(_ context.Context, _ string) ([]dto.ScoringMatrixCell, error) {
	return m.matrix, m.matrixErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
	calBuf   *bytes.Buffer
	calErr   error
}

func (m *mockExportService) ExportScoringMatrix(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) CalendarFeed(_ context.Context) (*bytes.Buffer, error) {
	return m.calBuf, m.calErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "judge@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "judge@example.com",
		Password: "wrongpass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Refresh_Invalid(t *testing.T) {
	mock := &mockAuthService{refreshErr: service.ErrRefreshInvalid}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "stale-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_UpdateJudgingPhase_Success(t *testing.T) {
	mock := &mockEventService{}
	h := NewEventHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/events/event-1/judging-phase", jsonBody(dto.UpdateJudgingPhaseRequest{
		JudgingPhase: "in-progress",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/events/:id/judging-phase", func(c *gin.Context) {
		setAuth(c)
		h.UpdateJudgingPhase(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestEventHandler_UpdateJudgingPhase_BadPhase(t *testing.T) {
	mock := &mockEventService{}
	h := NewEventHandler(mock)

	w := httptest.NewRecorder()
	// "paused" 不在 oneof 里，应被请求绑定层拒绝
	req := httptest.NewRequest("PUT", "/events/event-1/judging-phase", jsonBody(map[string]string{
		"judging_phase": "paused",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/events/:id/judging-phase", func(c *gin.Context) {
		setAuth(c)
		h.UpdateJudgingPhase(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_SetActiveTeam_ClearWithNull(t *testing.T) {
	mock := &mockEventService{}
	h := NewEventHandler(mock)

	w := httptest.NewRecorder()
	// body 里 team_id 为 null 表示清空登台队伍，必须能通过绑定
	req := httptest.NewRequest("PUT", "/events/event-1/active-team", bytes.NewReader([]byte(`{"team_id":null}`)))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/events/:id/active-team", func(c *gin.Context) {
		setAuth(c)
		h.SetActiveTeam(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestEventHandler_SetActiveTeam_ForeignTeam(t *testing.T) {
	mock := &mockEventService{activeErr: service.ErrTeamNotInEvent}
	h := NewEventHandler(mock)

	teamID := "55555555-5555-5555-5555-555555555555"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/events/event-1/active-team", jsonBody(dto.UpdateActiveTeamRequest{
		TeamID: &teamID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/events/:id/active-team", func(c *gin.Context) {
		setAuth(c)
		h.SetActiveTeam(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12106 {
		t.Errorf("expected error code 12106, got %d", resp.Code)
	}
}

func TestEventHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrEventNotFound, 404, 12101},
		{"NameTaken", service.ErrEventNameTaken, 400, 12102},
		{"TypeInvalid", service.ErrEventTypeInvalid, 400, 12103},
		{"DateInvalid", service.ErrEventDateInvalid, 400, 12104},
		{"PhaseInvalid", service.ErrPhaseInvalid, 400, 12105},
		{"TeamNotInEvent", service.ErrTeamNotInEvent, 400, 12106},
		{"SponsorAbsent", service.ErrEventSponsorAbsent, 400, 12107},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockEventService{getErr: tt.err}
			h := NewEventHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/events/event-1", nil)

			r := gin.New()
			r.GET("/events/:id", h.Get)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ScoreHandler Tests
// ═══════════════════════════════════════════════════════════

func submitBody() io.Reader {
	return jsonBody(dto.SubmitScoresRequest{
		EventID: "11111111-1111-1111-1111-111111111111",
		TeamID:  "22222222-2222-2222-2222-222222222222",
		JudgeID: "33333333-3333-3333-3333-333333333333",
		Scores: []dto.ScoreEntry{
			{CriterionID: "44444444-4444-4444-4444-444444444444", Score: 20},
		},
	})
}

func TestScoreHandler_Submit_Success(t *testing.T) {
	mock := &mockScoreService{}
	h := NewScoreHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/scores", submitBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scores", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScoreHandler_Submit_EmptyScores(t *testing.T) {
	mock := &mockScoreService{}
	h := NewScoreHandler(mock)

	w := httptest.NewRecorder()
	// scores 为空数组，绑定层 min=1 拒绝
	req := httptest.NewRequest("POST", "/scores", jsonBody(map[string]interface{}{
		"event_id": "11111111-1111-1111-1111-111111111111",
		"team_id":  "22222222-2222-2222-2222-222222222222",
		"judge_id": "33333333-3333-3333-3333-333333333333",
		"scores":   []interface{}{},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/scores", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScoreHandler_Submit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"ScoringClosed", service.ErrScoringClosed, 400, 15101},
		{"CriterionUnknown", service.ErrCriterionUnknown, 400, 15103},
		{"CriterionDuplicate", service.ErrCriterionDuplicate, 400, 15104},
		{"OutOfRange", service.ErrScoreOutOfRange, 400, 15105},
		{"NotSeatOwner", service.ErrNotSeatOwner, 403, 14104},
		{"TeamNotInEvent", service.ErrTeamNotInEvent, 400, 12106},
		{"TeamNotFound", service.ErrTeamNotFound, 404, 13101},
		{"JudgeNotFound", service.ErrJudgeNotFound, 404, 14101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScoreService{submitErr: tt.err}
			h := NewScoreHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/scores", submitBody())
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/scores", func(c *gin.Context) {
				setAuth(c)
				h.Submit(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestScoreHandler_Leaderboard_Success(t *testing.T) {
	mock := &mockScoreService{
		leaderboard: []dto.LeaderboardRow{
			{Rank: 1, TeamID: "team-1", Name: "Alpha", TotalScore: 80},
		},
	}
	h := NewScoreHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/event-1/leaderboard", nil)

	r := gin.New()
	r.GET("/events/:id/leaderboard", h.Leaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ScoringMatrix_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "scoring_matrix_event-1.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/event-1/export/scoring-matrix", nil)

	r := gin.New()
	r.GET("/events/:id/export/scoring-matrix", h.ExportScoringMatrix)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ScoringMatrix_NoJudges(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoJudges}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/event-1/export/scoring-matrix", nil)

	r := gin.New()
	r.GET("/events/:id/export/scoring-matrix", h.ExportScoringMatrix)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_CalendarFeed_Success(t *testing.T) {
	mock := &mockExportService{
		calBuf: bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar.ics", nil)

	r := gin.New()
	r.GET("/calendar.ics", h.CalendarFeed)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("VCALENDAR")) {
		t.Error("expected ics payload in body")
	}
}
