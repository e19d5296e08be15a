package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/guessbot-backend/internal/repository/storage"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite bundles a disposable redis instance for session store tests.
type Suite struct {
	Storage *redis.Client
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		// stopped containers remove themselves
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// hard kill in case cleanup never runs; never returns error
	_ = resource.Expire(expireDuration)

	pool.MaxWait = maxWaitDuration

	// the container may not accept connections yet, so retry with backoff
	var redisStorage *storage.RedisStorage
	if err = pool.Retry(func() error {
		redisStorage, err = storage.NewRedisStorage(ctx, resource.GetHostPort(redisPort))
		return err
	}); err != nil {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge resource: %v", purgeErr)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisStorage.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		_ = redisStorage.Close()

		if err = pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	return ctx, &Suite{
		Storage: redisStorage.Connection,
	}
}
