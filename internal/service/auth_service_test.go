package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/jwt"
)

func setupAuthFixture(t *testing.T) (AuthService, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	cfg := testConfig()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	m.user.users["user-1"] = &model.User{
		UserID:       "user-1",
		Email:        "judge@test.edu",
		PasswordHash: string(hash),
		Name:         "测试评委",
		Role:         model.RoleJudge,
		IsActive:     true,
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, m
}

func TestLogin_Success(t *testing.T) {
	svc, m := setupAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "judge@test.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录应返回 Token 对")
	}
	if resp.User.ID != "user-1" || resp.User.Role != model.RoleJudge {
		t.Error("用户信息不符")
	}
	if m.user.users["user-1"].LastLogin == nil {
		t.Error("登录应记录最近登录时间")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "judge@test.edu",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码应拒绝，得到: %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := setupAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@test.edu",
		Password: "whatever",
	})
	// 不泄露账号是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱应返回同一凭证错误，得到: %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, m := setupAuthFixture(t)
	m.user.users["user-1"].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "judge@test.edu",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("停用账号应拒绝，得到: %v", err)
	}
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, _ := setupAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "judge@test.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("刷新应发新 AccessToken")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "judge@test.edu",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// access token 不能当 refresh token 用
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("access token 刷新应拒绝，得到: %v", err)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := setupAuthFixture(t)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("非法 token 应拒绝，得到: %v", err)
	}
}
