// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"voca-app-backend/internal/config"
	"voca-app-backend/internal/handlers"
	"voca-app-backend/internal/middleware"
	"voca-app-backend/internal/model"
	"voca-app-backend/internal/repository"
	"voca-app-backend/internal/service"
	"voca-app-backend/internal/storage"
	"voca-app-backend/internal/token"
	"voca-app-backend/internal/webutil"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	if config.Cfg.IsProduction() {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", config.Cfg.App.Env))
	} else {
		// 開発環境では色つきの見やすいログを出す
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", config.Cfg.App.Env))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// エラーレスポンスの詳細出力は非production環境のみ
	webutil.SetProductionMode(config.Cfg.IsProduction())

	slog.Info("Application starting...")

	// Database (GORM)
	db, err := repository.NewDB(&config.Cfg, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Avatar storage (local or MinIO)
	avatarStore, err := storage.NewAvatarStore(context.Background(), &config.Cfg)
	if err != nil {
		slog.Error("Error initializing avatar storage", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	tokenManager := token.NewManager(&config.Cfg)
	kvStore := repository.NewKVStore(&config.Cfg)
	mailer := service.NewMailer(&config.Cfg)

	userRepo := repository.NewGormUserRepository()
	wordRepo := repository.NewGormWordRepository()
	wordListRepo := repository.NewGormWordListRepository()
	userWordListRepo := repository.NewGormUserWordListRepository()

	authService := service.NewAuthService(db, userRepo, kvStore, tokenManager, mailer, &config.Cfg)
	userService := service.NewUserService(db, userRepo, userWordListRepo, avatarStore)
	wordService := service.NewWordService(db, wordRepo)
	wordListService := service.NewWordListService(db, wordListRepo, wordRepo, userWordListRepo)
	learningService := service.NewLearningService(db, wordRepo, wordListRepo, userWordListRepo, kvStore)

	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(userService, wordListService, logger)
	wordHandler := handlers.NewWordHandler(wordService, logger)
	wordListHandler := handlers.NewWordListHandler(wordListService, logger)
	learningHandler := handlers.NewLearningHandler(learningService, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	}
	r.Use(cors.New(corsOptions).Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	authRequired := middleware.Authenticate(tokenManager)
	authOptional := middleware.OptionalAuthenticate(tokenManager)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/send-code", authHandler.SendCode)
			r.Post("/forgot-password", authHandler.ForgotPassword)

			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)
			r.Post("/avatar", userHandler.UploadAvatar)
			r.Delete("/avatar", userHandler.DeleteAvatar)
			r.Get("/stats", userHandler.GetStats)
			r.Put("/study-goal", userHandler.UpdateStudyGoal)
			r.Get("/wordlists", userHandler.GetMyWordLists)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOwnerOrAdmin("userId"))
				r.Get("/{userId}/stats", userHandler.GetUserStats)
			})
		})

		r.Route("/wordlist", func(r chi.Router) {
			// 一覧・詳細は未認証でも見える。認証済みなら joined が付く
			r.Group(func(r chi.Router) {
				r.Use(authOptional)
				r.Get("/", wordListHandler.GetWordLists)
				r.Get("/{wordListId}", wordListHandler.GetWordList)
				r.Get("/{wordListId}/words", wordListHandler.GetWordListWords)
			})

			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Post("/", wordListHandler.CreateWordList)
				r.Put("/{wordListId}", wordListHandler.UpdateWordList)
				r.Delete("/{wordListId}", wordListHandler.DeleteWordList)
				r.Post("/{wordListId}/words", wordListHandler.AddWords)
				r.Delete("/{wordListId}/words/{wordId}", wordListHandler.RemoveWord)
			})
		})

		r.Route("/user-wordlist", func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/my", wordListHandler.GetMyWordLists)
			r.Post("/", wordListHandler.JoinWordList)
			r.Delete("/{wordListId}", wordListHandler.LeaveWordList)
		})

		r.Route("/word", func(r chi.Router) {
			r.Get("/{wordId}", wordHandler.GetWord)

			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Post("/", wordHandler.CreateWord)

				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Put("/{wordId}", wordHandler.UpdateWord)
					r.Delete("/{wordId}", wordHandler.DeleteWord)
				})
			})
		})

		r.Route("/learning", func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/modes", learningHandler.GetModes)
			r.Post("/session", learningHandler.StartSession)
			r.Post("/session/{sessionId}/answer", learningHandler.SubmitAnswer)
			r.Post("/session/{sessionId}/complete", learningHandler.CompleteSession)
		})
	})

	// ローカル保存のアバターを配信する
	if config.Cfg.Storage.Driver == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Cfg.Storage.UploadDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	// サービスバナー
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		webutil.Success(w, logger, http.StatusOK, "服务运行中", map[string]string{
			"service": config.Cfg.App.Name,
			"env":     config.Cfg.App.Env,
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 未定義ルートもエンベロープ形式で返す
	r.NotFound(webutil.NotFoundHandler)

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
