package queries_test

import (
	"context"
	"testing"
	"time"

	"washday/internal/adapters/out/postgres/laundromatrepo"
	"washday/internal/core/application/usecases/queries"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetCapacityQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *laundromatrepo.GormLaundromatRepository
	handler    queries.GetCapacityQueryHandler
}

func (suite *GetCapacityQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&laundromatrepo.LaundromatDTO{},
		&laundromatrepo.ServiceAreaDTO{},
		&laundromatrepo.CapacityDayDTO{},
	)
	suite.Require().NoError(err)

	suite.repository = laundromatrepo.NewGormLaundromatRepository(db)
	suite.handler = queries.NewGetCapacityQueryHandler(db)
}

func (suite *GetCapacityQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetCapacityQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE laundromats, laundromat_service_areas, capacity_days").Error
	suite.Require().NoError(err)
}

func (suite *GetCapacityQueryHandlerTestSuite) seedLaundromat(
	name string, dailyCapacity int, postalCodes ...string,
) *laundromat.Laundromat {
	areas := make([]kernel.PostalCode, 0, len(postalCodes))
	for _, code := range postalCodes {
		postalCode, err := kernel.NewPostalCode(code)
		suite.Require().NoError(err)
		areas = append(areas, postalCode)
	}

	seeded, err := laundromat.NewLaundromat(kernel.NewUUID(), name, areas, dailyCapacity)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), seeded))
	return seeded
}

func (suite *GetCapacityQueryHandlerTestSuite) TestHandle_NoCoverage_ReturnsEmptySlice() {
	suite.seedLaundromat("Sunset Wash", 10, "94122")

	postalCode, err := kernel.NewPostalCode("94110")
	suite.Require().NoError(err)
	query, err := queries.NewGetCapacityQuery(postalCode, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetCapacityQueryHandlerTestSuite) TestHandle_ReturnsRemainingOrderedByName() {
	ctx := context.Background()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	busy := suite.seedLaundromat("Bernal Bubbles", 4, "94110")
	suite.Require().NoError(suite.repository.ReserveCapacity(ctx, busy.ID(), date))
	suite.Require().NoError(suite.repository.ReserveCapacity(ctx, busy.ID(), date))

	untouched := suite.seedLaundromat("Mission Suds", 12, "94110")

	// Outside the postal code, must not appear.
	suite.seedLaundromat("Sunset Wash", 10, "94122")

	postalCode, err := kernel.NewPostalCode("94110")
	suite.Require().NoError(err)
	query, err := queries.NewGetCapacityQuery(postalCode, date)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal("Bernal Bubbles", result[0].Name)
	suite.True(result[0].LaundromatID.IsEqual(busy.ID()))
	suite.Equal(4, result[0].Ceiling)
	suite.Equal(2, result[0].Consumed)
	suite.Equal(2, result[0].Remaining)

	suite.Equal("Mission Suds", result[1].Name)
	suite.True(result[1].LaundromatID.IsEqual(untouched.ID()))
	suite.Equal(0, result[1].Consumed)
	suite.Equal(12, result[1].Remaining)
}

func (suite *GetCapacityQueryHandlerTestSuite) TestHandle_SkipsDeactivatedLaundromats() {
	ctx := context.Background()

	retired := suite.seedLaundromat("Bernal Bubbles", 4, "94110")
	loaded, err := suite.repository.Get(ctx, retired.ID())
	suite.Require().NoError(err)
	loaded.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	postalCode, err := kernel.NewPostalCode("94110")
	suite.Require().NoError(err)
	query, err := queries.NewGetCapacityQuery(postalCode, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetCapacityQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetCapacityQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetCapacityQuery constructor")
}

func TestGetCapacityQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetCapacityQueryHandlerTestSuite))
}
