package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/career-path/internal/domain/profile"
)

type ProfileCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	cache     profile.Cache
}

func (s *ProfileCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(1 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.container = container

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		s.T().Fatalf("Failed to get redis endpoint: %s", err)
	}
	s.client = redis.NewClient(&redis.Options{Addr: addr})
	s.cache = NewRedisProfileCache(s.client, time.Minute)
}

func (s *ProfileCacheIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate redis container: %s", err)
		}
	}
}

func TestProfileCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileCacheIntegrationTestSuite))
}

func snapshot(ownerID uuid.UUID, version int64, careers ...int) *profile.UserProfile {
	p := profile.NewUserProfile(ownerID)
	p.ID = uuid.New()
	p.Version = version
	p.SavedCareers = careers
	return p
}

func (s *ProfileCacheIntegrationTestSuite) Test_Miss() {
	p, err := s.cache.Get(context.Background(), uuid.New())
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *ProfileCacheIntegrationTestSuite) Test_OlderVersionDoesNotReplaceNewer() {
	ctx := context.Background()
	owner := uuid.New()

	s.Require().NoError(s.cache.Set(ctx, snapshot(owner, 2, 1, 2)))
	s.Require().NoError(s.cache.Set(ctx, snapshot(owner, 1, 1)))

	p, err := s.cache.Get(ctx, owner)
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Equal(int64(2), p.Version)
	s.Equal([]int{1, 2}, p.SavedCareers)

	s.Require().NoError(s.cache.Set(ctx, snapshot(owner, 3, 2)))
	p, err = s.cache.Get(ctx, owner)
	s.Require().NoError(err)
	s.Equal([]int{2}, p.SavedCareers)
}

func (s *ProfileCacheIntegrationTestSuite) Test_InvalidateAndTTL() {
	ctx := context.Background()
	owner := uuid.New()

	s.Require().NoError(s.cache.Set(ctx, snapshot(owner, 1, 7)))
	ttl, err := s.client.PTTL(ctx, profileKey(owner)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(s.cache.Invalidate(ctx, owner))
	p, err := s.cache.Get(ctx, owner)
	s.Require().NoError(err)
	s.Nil(p)
}
