package sequencerepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"pos/internal/adapters/out/postgres/sequencerepo"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SequenceRepositoryIntegrationTestSuite provides integration tests for the
// counter store using PostgreSQL containers. The atomic insert-or-increment
// behavior under concurrency is the whole point of this repository, so it is
// verified against a real database rather than a mock.
type SequenceRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *sequencerepo.GormSequenceRepository
}

func (suite *SequenceRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&sequencerepo.SequenceDTO{}))
}

func (suite *SequenceRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_number_sequences").Error)
	suite.repository = sequencerepo.NewGormSequenceRepository(suite.db)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestNext_NewKey_StartsAtOne() {
	ctx := context.Background()

	value, err := suite.repository.Next(ctx, "20260119")
	suite.Require().NoError(err)
	suite.Equal(1, value)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestNext_ExistingKey_Increments() {
	ctx := context.Background()

	for expected := 1; expected <= 5; expected++ {
		value, err := suite.repository.Next(ctx, "20260119")
		suite.Require().NoError(err)
		suite.Equal(expected, value)
	}
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestNext_IndependentKeys_IndependentCounters() {
	ctx := context.Background()

	value, err := suite.repository.Next(ctx, "20260119")
	suite.Require().NoError(err)
	suite.Equal(1, value)

	value, err = suite.repository.Next(ctx, "20260120")
	suite.Require().NoError(err)
	suite.Equal(1, value)

	value, err = suite.repository.Next(ctx, "2026011908")
	suite.Require().NoError(err)
	suite.Equal(1, value)
}

// TestNext_Concurrency verifies that concurrent callers each get a distinct
// value with no gaps: N calls on a fresh key must hand out exactly 1..N.
func (suite *SequenceRepositoryIntegrationTestSuite) TestNext_Concurrency() {
	ctx := context.Background()
	const callers = 20

	var wg sync.WaitGroup
	values := make(chan int, callers)

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := suite.repository.Next(ctx, "20260119")
			suite.NoError(err)
			values <- value
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[int]bool, callers)
	for value := range values {
		suite.False(seen[value], "value %d handed out twice", value)
		seen[value] = true
	}

	suite.Len(seen, callers)
	for expected := 1; expected <= callers; expected++ {
		suite.True(seen[expected], "value %d missing from sequence", expected)
	}
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestDeleteOlderThan_RemovesOnlyOlderKeys() {
	ctx := context.Background()

	// Daily and hourly keys of old dates, plus current ones that must survive.
	for _, key := range []string{"20260110", "2026011108", "20260112", "2026011209", "20260119"} {
		_, err := suite.repository.Next(ctx, key)
		suite.Require().NoError(err)
	}

	deleted, err := suite.repository.DeleteOlderThan(ctx, "20260112")
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)

	var remaining []string
	suite.Require().NoError(
		suite.db.Model(&sequencerepo.SequenceDTO{}).Order("key").Pluck("key", &remaining).Error,
	)
	suite.Equal([]string{"20260112", "2026011209", "20260119"}, remaining)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestDeleteOlderThan_NothingToDelete_ReturnsZero() {
	ctx := context.Background()

	_, err := suite.repository.Next(ctx, "20260119")
	suite.Require().NoError(err)

	deleted, err := suite.repository.DeleteOlderThan(ctx, "20260112")
	suite.Require().NoError(err)
	suite.Equal(int64(0), deleted)
}

func (suite *SequenceRepositoryIntegrationTestSuite) TestNext_EmptyKey_ReturnsError() {
	_, err := suite.repository.Next(context.Background(), "")
	suite.Require().Error(err)
}

func TestSequenceRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceRepositoryIntegrationTestSuite))
}
