package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRateLimitRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewRateLimitRepository(rdb, "presign", 2, 2*time.Second)

	t.Run("within limit then rejected", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			ok, err := repo.Allow(ctx, "10.0.0.1")
			assert.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := repo.Allow(ctx, "10.0.0.1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		ok, err := repo.Allow(ctx, "10.0.0.2")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("window expires", func(t *testing.T) {
		time.Sleep(3 * time.Second)
		ok, err := repo.Allow(ctx, "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}
