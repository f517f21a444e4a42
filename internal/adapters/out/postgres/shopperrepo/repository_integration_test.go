package shopperrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/mnpatel007/delhiveryway-shopper/internal/adapters/out/postgres/shopperrepo"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/shopper"
	"github.com/mnpatel007/delhiveryway-shopper/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ShopperRepositoryIntegrationTestSuite provides integration tests for ShopperRepository
// using PostgreSQL containers to verify database persistence behavior.
type ShopperRepositoryIntegrationTestSuite struct {
	suite.Suite
	container         *postgres.PostgresContainer
	db                *gorm.DB
	shopperRepository *shopperrepo.GormShopperRepository
	tracker           *MockAggregateTracker
}

func (suite *ShopperRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&shopperrepo.ShopperDTO{}))
}

func (suite *ShopperRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shoppers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.shopperRepository = shopperrepo.NewGormShopperRepository(suite.db, suite.tracker)
}

func (suite *ShopperRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestAdd_ValidShopper_Success() {
	ctx := context.Background()

	testShopper := suite.createTestShopper("Asha")
	suite.tracker.On("TrackAggregate", testShopper.ID(), testShopper).Once()

	err := suite.shopperRepository.Add(ctx, testShopper)
	suite.Require().NoError(err)

	suite.assertShopperCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestGet_ExistingShopper_RoundTripsAggregate() {
	ctx := context.Background()

	original := suite.createTestShopper("Asha")
	suite.Require().NoError(original.GoOnline())
	position := suite.createTestPosition(time.Now())
	applied, err := original.UpdatePosition(position)
	suite.Require().NoError(err)
	suite.Require().True(applied)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.shopperRepository.Add(ctx, original))

	retrieved, err := suite.shopperRepository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Name(), retrieved.Name())
	suite.Equal(original.Phone(), retrieved.Phone())
	suite.True(retrieved.IsOnline())
	suite.False(retrieved.IsForcedOffline())
	suite.Equal(original.ActiveOrders(), retrieved.ActiveOrders())

	suite.Require().NotNil(retrieved.LastPosition())
	suite.InDelta(position.Latitude(), retrieved.LastPosition().Latitude(), 1e-9)
	suite.InDelta(position.Longitude(), retrieved.LastPosition().Longitude(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestGet_ShopperWithoutPosition_RestoresNilPosition() {
	ctx := context.Background()

	original := suite.createTestShopper("Ravi")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.shopperRepository.Add(ctx, original))

	retrieved, err := suite.shopperRepository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Nil(retrieved.LastPosition())
	suite.False(retrieved.IsOnline())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestGet_NonExistentShopper_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.shopperRepository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestUpdate_AvailabilityAndPositionChanges_Persisted() {
	ctx := context.Background()

	testShopper := suite.createTestShopper("Asha")
	suite.tracker.On("TrackAggregate", testShopper.ID(), testShopper)
	suite.Require().NoError(suite.shopperRepository.Add(ctx, testShopper))

	suite.Require().NoError(testShopper.GoOnline())
	applied, err := testShopper.UpdatePosition(suite.createTestPosition(time.Now()))
	suite.Require().NoError(err)
	suite.Require().True(applied)
	suite.Require().NoError(testShopper.TakeOrder())
	suite.Require().NoError(suite.shopperRepository.Update(ctx, testShopper))

	retrieved, err := suite.shopperRepository.Get(ctx, testShopper.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsOnline())
	suite.Equal(1, retrieved.ActiveOrders())
	suite.NotNil(retrieved.LastPosition())

	// Going back offline must persist the flag flipping to false.
	testShopper.GoOffline()
	suite.Require().NoError(suite.shopperRepository.Update(ctx, testShopper))

	retrieved, err = suite.shopperRepository.Get(ctx, testShopper.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsOnline())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestUpdate_ForcedOffline_Persisted() {
	ctx := context.Background()

	testShopper := suite.createTestShopper("Asha")
	suite.Require().NoError(testShopper.GoOnline())
	suite.tracker.On("TrackAggregate", testShopper.ID(), testShopper)
	suite.Require().NoError(suite.shopperRepository.Add(ctx, testShopper))

	testShopper.ForceOffline()
	suite.Require().NoError(suite.shopperRepository.Update(ctx, testShopper))

	retrieved, err := suite.shopperRepository.Get(ctx, testShopper.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsOnline())
	suite.True(retrieved.IsForcedOffline())

	// A voluntary toggle while forced offline must keep being refused.
	suite.Require().Error(retrieved.GoOnline())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestUpdate_NonExistentShopper_ReturnsError() {
	ctx := context.Background()

	err := suite.shopperRepository.Update(ctx, suite.createTestShopper("Ghost"))
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestGetAllOnline_ReturnsOnlyOnlineShoppers() {
	ctx := context.Background()

	online := suite.createTestShopper("Online Shopper")
	suite.Require().NoError(online.GoOnline())

	offline := suite.createTestShopper("Offline Shopper")

	forced := suite.createTestShopper("Forced Shopper")
	suite.Require().NoError(forced.GoOnline())
	forced.ForceOffline()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, s := range []*shopper.Shopper{online, offline, forced} {
		suite.Require().NoError(suite.shopperRepository.Add(ctx, s))
	}

	onlineShoppers, err := suite.shopperRepository.GetAllOnline(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(onlineShoppers, 1)
	suite.Equal(online.ID(), onlineShoppers[0].ID())
}

func (suite *ShopperRepositoryIntegrationTestSuite) TestGetAllOnline_NoOnlineShoppers_ReturnsEmptySlice() {
	ctx := context.Background()

	offline := suite.createTestShopper("Offline Shopper")
	suite.tracker.On("TrackAggregate", offline.ID(), offline).Once()
	suite.Require().NoError(suite.shopperRepository.Add(ctx, offline))

	onlineShoppers, err := suite.shopperRepository.GetAllOnline(ctx)
	suite.Require().NoError(err)
	suite.Empty(onlineShoppers)
}

// createTestShopper creates an offline shopper with no position.
func (suite *ShopperRepositoryIntegrationTestSuite) createTestShopper(name string) *shopper.Shopper {
	testShopper, err := shopper.NewShopper(kernel.NewUUID(), name, "+919876543210")
	suite.Require().NoError(err)
	return testShopper
}

// createTestPosition builds a GPS sample near the shop.
func (suite *ShopperRepositoryIntegrationTestSuite) createTestPosition(takenAt time.Time) kernel.GeoPosition {
	position, err := kernel.NewGeoPosition(12.9716, 77.5946, 90, 4.2, takenAt)
	suite.Require().NoError(err)
	return position
}

// assertShopperCount verifies the number of shoppers in the database.
func (suite *ShopperRepositoryIntegrationTestSuite) assertShopperCount(expected int) {
	var count int64
	err := suite.db.Model(&shopperrepo.ShopperDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestShopperRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShopperRepositoryIntegrationTestSuite))
}
