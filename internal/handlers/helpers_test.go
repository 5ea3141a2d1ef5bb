package handlers_test

import (
	"ChatVault/internal/config"
	"ChatVault/internal/handlers"
	"ChatVault/internal/middleware"
	"ChatVault/internal/model"
	"ChatVault/internal/repo"
	"ChatVault/internal/service"
	"ChatVault/internal/token"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Local light mocks
type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockChatRepo struct{ mock.Mock }

func (m *hMockChatRepo) Create(ctx context.Context, chat *model.Chat) error {
	return m.Called(ctx, chat).Error(0)
}
func (m *hMockChatRepo) List(ctx context.Context, userID int64, page, perPage int, sortBy string) ([]model.Chat, int64, error) {
	args := m.Called(ctx, userID, page, perPage, sortBy)
	var items []model.Chat
	if v, ok := args.Get(0).([]model.Chat); ok {
		items = v
	}
	return items, args.Get(1).(int64), args.Error(2)
}
func (m *hMockChatRepo) GetByID(ctx context.Context, userID, chatID int64, includeData bool) (*model.Chat, error) {
	args := m.Called(ctx, userID, chatID, includeData)
	if c, ok := args.Get(0).(*model.Chat); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockChatRepo) GetAnyByID(ctx context.Context, chatID int64, includeData bool) (*model.Chat, error) {
	args := m.Called(ctx, chatID, includeData)
	if c, ok := args.Get(0).(*model.Chat); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockChatRepo) Rename(ctx context.Context, userID, chatID int64, name string) (*model.Chat, error) {
	args := m.Called(ctx, userID, chatID, name)
	if c, ok := args.Get(0).(*model.Chat); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockChatRepo) Delete(ctx context.Context, userID, chatID int64) error {
	return m.Called(ctx, userID, chatID).Error(0)
}
func (m *hMockChatRepo) ExistsForUser(ctx context.Context, userID, chatID int64) (bool, error) {
	args := m.Called(ctx, userID, chatID)
	return args.Bool(0), args.Error(1)
}

var _ repo.ChatRepository = (*hMockChatRepo)(nil)

const testShareSecret = "share-secret"

func newTestRouter(t *testing.T) (http.Handler, *config.Config, *hMockUserRepo, *hMockChatRepo) {
	t.Helper()
	cfg := &config.Config{
		AuthSecret:    "test-secret",
		ShareSecret:   testShareSecret,
		BlobMaxSizeMB: 1,
		BaseURL:       "localhost:8081",
		ServerURL:     "http://localhost:8081",
	}
	logger := zap.NewNop().Sugar()
	ur := &hMockUserRepo{}
	cr := &hMockChatRepo{}

	userSvc := service.NewUserService(ur)
	chatSvc := service.NewChatService(cr, logger)
	shareSvc := token.NewShareService(cfg.ShareSecret)
	h := handlers.NewHandler(userSvc, chatSvc, shareSvc, logger, cfg)
	return h.Router, cfg, ur, cr
}

func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
