package main

import (
	"ChatVault/internal/config"
	"ChatVault/internal/handlers"
	"ChatVault/internal/middleware"
	"ChatVault/internal/repo"
	"ChatVault/internal/service"
	"ChatVault/internal/token"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	// секрет share-токенов обязателен до старта: без него шаринг не работает вовсе
	if cfg.ShareSecret == "" {
		sugar.Fatalw("SHARE_SECRET is not configured")
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	chatRepo := repo.NewChatRepository(gormDB)

	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(chatRepo, sugar)
	shareService := token.NewShareService(cfg.ShareSecret)

	h := handlers.NewHandler(userService, chatService, shareService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
