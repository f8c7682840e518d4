package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nanny-match/internal/config"
	"nanny-match/internal/database"
	dbpostgres "nanny-match/internal/database/postgres"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/delivery/http/handler"
	"nanny-match/internal/delivery/http/middleware"
	v1 "nanny-match/internal/delivery/http/routes/v1"
	"nanny-match/internal/infrastructure/cache"
	"nanny-match/internal/infrastructure/sms"
	"nanny-match/internal/pkg/jwt"
	"nanny-match/internal/repository"
	"nanny-match/internal/usecase"
	"nanny-match/internal/usecase/otp"
	"nanny-match/internal/ws"
)

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   jwt.Service
	Hub   *ws.Hub

	Health *handler.HealthHandler
	Dev    *handler.DevHandler
	API    v1.Handlers
	AuthMw *middleware.AuthMiddleware
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, dbpostgres.WithQueryLogger(logger.Named("db"), cfg.Database.SlowQuery))
	if err != nil {
		return nil, err
	}
	redis := cache.NewRedis(ctx, cfg.Redis, logger.Named("redis"))

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	users := repository.NewPostgresUserRepository(db)
	var registry onboarding.Registry = repository.NewPostgresOnboardingRepository(db)
	if redis.Available() && cfg.Redis.RegistryTTL > 0 {
		registry = usecase.NewCachedRegistry(registry, redis, cfg.Redis.RegistryTTL, logger.Named("registry_cache"))
	}
	answers := repository.NewPostgresAnswerRepository(db)
	tables := repository.NewPostgresTableRepository(db)

	hub := ws.NewHub(logger.Named("ws"))

	otpSvc := otp.NewService(redis, sms.NewLogSender(logger.Named("sms")), cfg.OTP.TTL, cfg.OTP.ResendInterval, logger.Named("otp"))
	authUC := usecase.NewAuthUsecase(users, jwtSvc)
	userUC := usecase.NewUserUsecase(users)
	onboardingUC := usecase.NewOnboardingUsecase(registry, logger.Named("onboarding"))
	answerUC := usecase.NewAnswerUsecase(answers, registry, ws.NewNotifier(hub), logger.Named("answers"))
	tableUC := usecase.NewTableUsecase(tables, logger.Named("tables"))
	nannyUC := usecase.NewNannyUsecase(users, logger.Named("nannies"))
	devUC := usecase.NewDevUsecase(cfg.Database, db, tables)

	checks := map[string]handler.Pinger{"database": db}
	if redis.Available() {
		checks["redis"] = redis
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redis,
		JWT:    jwtSvc,
		Hub:    hub,
		Health: handler.NewHealthHandler(cfg.App.AppName, checks),
		Dev:    handler.NewDevHandler(devUC),
		API: v1.Handlers{
			Auth:       handler.NewAuthHandler(authUC, otpSvc),
			User:       handler.NewUserHandler(userUC),
			Onboarding: handler.NewOnboardingHandler(onboardingUC),
			Answers:    handler.NewAnswerHandler(answerUC),
			Tables:     handler.NewTableHandler(tableUC),
			Nannies:    handler.NewNannyHandler(nannyUC),
			WS:         ws.NewHandler(hub, jwtSvc, logger.Named("ws")),
		},
		AuthMw: middleware.NewAuthMiddleware(jwtSvc),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
