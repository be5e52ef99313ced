package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appauth "github.com/abraaosantosdeveloper/taskmanager/internal/application/auth"
	apptask "github.com/abraaosantosdeveloper/taskmanager/internal/application/task"
	"github.com/abraaosantosdeveloper/taskmanager/internal/config"
	infraauth "github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/auth"
	httprouter "github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/http"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/http/handlers"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/http/middleware"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/persistence/migrations"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/persistence/postgres"
	"github.com/abraaosantosdeveloper/taskmanager/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := migrations.Up(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	registerUC := appauth.NewRegisterUser(userRepo, hasher, issuer)
	loginUC := appauth.NewLogin(userRepo, hasher, issuer)
	updateProfileUC := appauth.NewUpdateProfile(userRepo, hasher)
	resolveIdentityUC := appauth.NewResolveIdentity(userRepo, issuer)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, updateProfileUC, log)
	tasksHandler := handlers.NewTasksHandler(
		apptask.NewCreateTask(taskRepo),
		apptask.NewListTasks(taskRepo),
		apptask.NewGetTask(taskRepo),
		apptask.NewUpdateTask(taskRepo),
		apptask.NewUpdateStatus(taskRepo),
		apptask.NewDeleteTask(taskRepo),
		apptask.NewGetStatistics(taskRepo),
		log,
	)
	healthHandler := handlers.NewHealthHandler(pool)

	gate := middleware.NewRequestGate(resolveIdentityUC, log)
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Server.Env == "development"))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		TasksHandler:  tasksHandler,
		HealthHandler: healthHandler,
		Gate:          gate.Handler,
		CORS:          middleware.CORS(cfg.CORS.AllowedOrigins),
		Secure:        secureMiddleware,
		Log:           log,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
