package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"go.uber.org/zap"
)

// ServiceContainer wires every service to the selected store
type ServiceContainer struct {
	config *config.Config
	store  store.Store
	redis  *redis.Client
	logger *zap.Logger

	jwtService          services.InterfaceJWTService
	redisService        services.InterfaceRedisService
	professionalService services.InterfaceProfessionalService
	drillService        services.InterfaceDrillService
	incidentService     services.InterfaceIncidentService

	mu sync.RWMutex
}

// NewServiceContainer builds the services. redisClient may be nil; an
// unreachable Redis is logged and caching is skipped.
func NewServiceContainer(cfg *config.Config, st store.Store, redisClient *redis.Client, log *zap.Logger) *ServiceContainer {
	if cfg == nil {
		panic("config is nil")
	}
	if st == nil {
		panic("store is nil")
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed, task summary cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	c := &ServiceContainer{
		config: cfg,
		store:  st,
		redis:  redisClient,
		logger: log,
	}
	c.initializeServices()
	return c
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redis != nil {
		c.redisService = services.NewRedisService(c.redis)
	}

	c.jwtService = services.NewJWTService(c.config, c.store, c.logger)
	c.professionalService = services.NewProfessionalService(c.store, c.redisService, c.config, c.logger)
	c.drillService = services.NewDrillService(c.store, c.logger)
	c.incidentService = services.NewIncidentService(c.store)
}

// GetService returns the named service, or nil for unknown names and for
// "redis" when caching is disabled.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "store":
		return c.store
	case "logger":
		return c.logger
	case "jwt":
		return c.jwtService
	case "redis":
		if c.redisService == nil {
			return nil
		}
		return c.redisService
	case "professional":
		return c.professionalService
	case "drill":
		return c.drillService
	case "incident":
		return c.incidentService
	default:
		return nil
	}
}

// GetConfig returns the application configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the persistence backend
func (c *ServiceContainer) GetStore() store.Store {
	return c.store
}

// GetLogger returns the application logger
func (c *ServiceContainer) GetLogger() *zap.Logger {
	return c.logger
}
