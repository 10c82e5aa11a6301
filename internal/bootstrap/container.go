package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"menu-tree-be/internal/config"
	"menu-tree-be/internal/controller"
	"menu-tree-be/internal/pkg/logger"
	"menu-tree-be/internal/pkg/metrics"
	"menu-tree-be/internal/repository/cache"
	"menu-tree-be/internal/repository/memory"
	"menu-tree-be/internal/repository/unitofwork"
	"menu-tree-be/internal/service"
	"menu-tree-be/internal/websocket"
	"menu-tree-be/pkg/database"

	pktNats "menu-tree-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MenuController   controller.IMenuController
	HealthController controller.IHealthController

	// Exposed for the seed command
	MenuService service.IMenuService

	Metrics *metrics.Metrics
	Logger  logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func()
}

// NewContainer wires every dependency. db may be nil when cfg.Database.Driver is "memory".
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	appMetrics := metrics.New()

	uowFactory, ping, err := newStorage(db, cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	// 2. Infrastructure
	var rdb *redis.Client
	if cfg.Cache.Driver == "redis" {
		rdb = newRedisClient(cfg.Cache.RedisURL)
	}
	treeCache := newTreeCache(cfg.Cache, rdb)

	c := &Container{
		Metrics: appMetrics,
		Logger:  sysLogger,
	}
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	wsHub := websocket.NewHub(rdb, sysLogger)
	forwarders := []service.EventForwarder{wsHub}

	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarders = append(forwarders, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.Topic, sysLogger, forwarders...)

	menuService := service.NewMenuService(
		uowFactory,
		treeCache,
		publisherService,
		appMetrics,
		sysLogger,
		service.MenuServiceOptions{CascadeDepth: cfg.Menu.CascadeDepth},
	)

	// 5. Controllers
	c.MenuController = controller.NewMenuController(menuService)
	c.HealthController = controller.NewHealthController(ping)
	c.MenuService = menuService
	c.ConsumerService = consumerService
	c.WebSocketHub = wsHub

	return c, nil
}

// Close releases connections opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newStorage(db *gorm.DB, driver string) (unitofwork.RepositoryFactory, controller.PingFunc, error) {
	if driver == database.DriverMemory {
		log.Printf("[INFO] Using in-memory menu store (data is lost on restart)")
		return memory.NewRepositoryFactory(memory.NewMenuStore()),
			func(context.Context) error { return nil },
			nil
	}
	if db == nil {
		return nil, nil, fmt.Errorf("database driver %q requires a connection", driver)
	}
	return unitofwork.NewRepositoryFactory(db),
		func(ctx context.Context) error { return database.Ping(ctx, db) },
		nil
}

func newRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}

func newTreeCache(cfg config.CacheConfig, rdb *redis.Client) cache.TreeCache {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	switch cfg.Driver {
	case "redis":
		return cache.NewRedisTreeCache(rdb, ttl)
	case "none":
		return cache.NewNoopTreeCache()
	default:
		return cache.NewMemoryTreeCache(ttl)
	}
}
