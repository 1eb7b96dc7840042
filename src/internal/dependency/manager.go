package dependency

import (
	"github.com/gin-gonic/gin"

	"kennelhub-session-svc/src/clients"
	"kennelhub-session-svc/src/internal/auth"
	"kennelhub-session-svc/src/internal/cache"
	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/session"
)

type Manager struct {
	Router         *gin.Engine
	Config         *config.Configuration
	Mongodb        *clients.MongoDB
	Redis          *clients.RedisClient
	RabbitMQ       *clients.RabbitMQ
	SessionService session.Service
	SessionHandler session.Handler
	CacheService   cache.Service
	EventPublisher *clients.EventPublisher
}

func NewDependencyManager(router *gin.Engine,
	mongodb *clients.MongoDB,
	redisClient *clients.RedisClient,
	rabbitMQ *clients.RabbitMQ,
	cfg *config.Configuration) *Manager {
	cacheService := cache.NewCacheService(redisClient.Client, cfg)
	sessionRepo := session.NewSessionRepository(mongodb, cfg.Database.SessionCollection)
	authenticator := auth.NewAuthenticator(&cfg.Target, auth.NewFieldExtractor())
	eventPublisher := clients.NewEventPublisher(cfg, rabbitMQ.Channel)
	sessionService := session.NewSessionService(sessionRepo, authenticator, cacheService, eventPublisher, cfg)
	sessionHandler := session.NewHandler(cfg, sessionService)

	return &Manager{
		Router:         router,
		Config:         cfg,
		Mongodb:        mongodb,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		SessionService: sessionService,
		SessionHandler: sessionHandler,
		CacheService:   cacheService,
		EventPublisher: eventPublisher,
	}
}
