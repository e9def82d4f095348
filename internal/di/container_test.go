package di

import (
	"context"
	"testing"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/internal/repository"
	"github.com/VB6Enjoyer/snakebnb/internal/service"
	"github.com/VB6Enjoyer/snakebnb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	c := NewContainer(&ContainerConfig{Store: repository.NewMemoryStore().Store()})

	assert.IsType(t, &service.NoOpEventPublisher{}, c.EventPublisher)
	require.NotNil(t, c.Handlers)
	assert.NotNil(t, c.Handlers.Health)
	assert.NotNil(t, c.Handlers.Booking)

	owner, err := c.AccountService.CreateAccount(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = c.CageService.RegisterCage(context.Background(), owner.ID, domain.CageSpec{Name: "x", SquareMeters: 1})
	require.NoError(t, err)

	assert.NoError(t, c.Close(context.Background()))
}

func TestBuild_MemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreMemory
	cfg.Redis.Enabled = true
	cfg.Kafka.Enabled = false

	c, err := Build(context.Background(), cfg, false)
	require.NoError(t, err)
	assert.Nil(t, c.Redis, "redis is only opened on request")
	assert.NoError(t, c.Store.Ping(context.Background()))
	assert.NoError(t, c.Close(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "cassandra"

	_, err := OpenStore(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown store driver")
}
