package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/handler"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/config"
	"github.com/VB6Enjoyer/snakebnb/pkg/database"
	"github.com/VB6Enjoyer/snakebnb/pkg/kafka"
	"github.com/VB6Enjoyer/snakebnb/pkg/logger"
	pkgredis "github.com/VB6Enjoyer/snakebnb/pkg/redis"
	"go.uber.org/zap"
)

// Container holds all dependencies of the marketplace
type Container struct {
	// Infrastructure
	Store *repository.Store
	Redis *pkgredis.Client

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	AccountService service.AccountService
	SnakeService   service.SnakeService
	CageService    service.CageService
	BookingService service.BookingService

	// Handlers
	Handlers *handler.Handlers
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Store          *repository.Store
	Redis          *pkgredis.Client
	EventPublisher service.EventPublisher
	Clock          func() time.Time
}

// NewContainer wires services and handlers over already opened infrastructure
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		Store:          cfg.Store,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}
	if c.EventPublisher == nil {
		c.EventPublisher = service.NewNoOpEventPublisher()
	}

	store := c.Store
	c.AccountService = service.NewAccountService(store.Owners, cfg.Clock)
	c.SnakeService = service.NewSnakeService(store.Owners, store.Snakes, cfg.Clock)
	c.CageService = service.NewCageService(store.Owners, store.Cages, c.EventPublisher, cfg.Clock)
	c.BookingService = service.NewBookingService(store.Owners, store.Snakes, store.Cages, &service.BookingServiceConfig{
		Publisher: c.EventPublisher,
		Clock:     cfg.Clock,
	})

	checks := map[string]handler.PingFunc{"store": store.Ping}
	if c.Redis != nil {
		checks["redis"] = c.Redis.Ping
	}
	c.Handlers = &handler.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Owner:   handler.NewOwnerHandler(c.AccountService, c.SnakeService),
		Cage:    handler.NewCageHandler(c.CageService),
		Booking: handler.NewBookingHandler(c.BookingService, c.SnakeService),
	}
	return c
}

// Build opens the configured store, Kafka and Redis and wires the container.
// Kafka and Redis failures degrade to no-op publishing and no idempotency.
func Build(ctx context.Context, cfg *config.Config, withRedis bool) (*Container, error) {
	log := logger.Get()

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher := openPublisher(ctx, cfg, log)

	var redisClient *pkgredis.Client
	if withRedis && cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.Warn("redis connection failed, idempotency disabled", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	return NewContainer(&ContainerConfig{
		Store:          store,
		Redis:          redisClient,
		EventPublisher: publisher,
	}), nil
}

// OpenStore connects the driver named by cfg.Store.Driver
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	log := logger.Get()

	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Info("using in-memory store")
		return repository.NewMemoryStore().Store(), nil

	case config.StoreMongoDB:
		mdb, err := database.NewMongo(ctx, &database.MongoConfig{
			URI:            cfg.MongoDB.URI,
			Database:       cfg.MongoDB.Database,
			AppName:        cfg.App.Name,
			ConnectTimeout: cfg.MongoDB.ConnectTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("mongodb connection failed: %w", err)
		}
		if err := repository.EnsureMongoIndexes(ctx, mdb.Database()); err != nil {
			_ = mdb.Close(ctx)
			return nil, err
		}
		store := repository.NewMongoStore(mdb.Database())
		store.Ping = mdb.HealthCheck
		store.Close = mdb.Close
		log.Info("mongodb connected", zap.String("database", cfg.MongoDB.Database))
		return store, nil

	case config.StorePostgres:
		pdb, err := database.NewPostgres(ctx, &database.PostgresConfig{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnectTimeout:  10 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		if err := repository.EnsurePostgresSchema(ctx, pdb.Pool()); err != nil {
			pdb.Close()
			return nil, err
		}
		store := repository.NewPostgresStore(pdb.Pool())
		store.Ping = pdb.HealthCheck
		store.Close = func(context.Context) error {
			pdb.Close()
			return nil
		}
		log.Info("postgres connected", zap.String("database", cfg.Database.DBName))
		return store, nil
	}

	return nil, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
}

func openPublisher(ctx context.Context, cfg *config.Config, log *logger.Logger) service.EventPublisher {
	if !cfg.Kafka.Enabled {
		return service.NewNoOpEventPublisher()
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: cfg.Kafka.ClientID,
	})
	if err != nil {
		log.Warn("kafka connection failed, using no-op publisher", zap.Error(err))
		return service.NewNoOpEventPublisher()
	}

	publisher, err := service.NewKafkaEventPublisher(producer, &service.EventPublisherConfig{
		Topic:       cfg.Kafka.Topic,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		producer.Close()
		log.Warn("kafka publisher setup failed, using no-op publisher", zap.Error(err))
		return service.NewNoOpEventPublisher()
	}
	log.Info("kafka event publisher connected", zap.String("topic", cfg.Kafka.Topic))
	return publisher
}

// Close releases publisher, Redis and store in that order
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.EventPublisher != nil {
		errs = append(errs, c.EventPublisher.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.Store != nil && c.Store.Close != nil {
		errs = append(errs, c.Store.Close(ctx))
	}
	return errors.Join(errs...)
}
