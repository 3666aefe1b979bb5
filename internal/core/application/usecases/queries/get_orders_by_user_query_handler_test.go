package queries_test

import (
	"context"
	"testing"
	"time"

	"ordersim/internal/adapters/out/postgres/orderrepo"
	"ordersim/internal/core/application/usecases/queries"
	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrdersByUserQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrdersByUserQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	stores    kernel.StoreSet
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.stores = kernel.DefaultStoreSet()
	suite.handler = queries.NewGetOrdersByUserQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, suite.stores, &mockAggregateTracker{})
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_NoOrders_ReturnsEmptyPage() {
	query, err := queries.NewGetOrdersByUserQuery("user-42", 0, 0, "", "")
	suite.Require().NoError(err)

	page, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.NotNil(page.Orders)
	suite.Empty(page.Orders)
	suite.Zero(page.Total)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_ReturnsNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	oldest := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", base)
	middle := seedOrder(suite.T(), suite.stores, "lassana_flora", "user-42", base.Add(10*time.Minute))
	newest := seedOrder(suite.T(), suite.stores, "onlinekade", "user-42", base.Add(20*time.Minute))
	for _, seeded := range []*order.Order{oldest, middle, newest} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	}

	query, err := queries.NewGetOrdersByUserQuery("user-42", 0, 0, "", "")
	suite.Require().NoError(err)

	page, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(3, page.Total)
	suite.Require().Len(page.Orders, 3)
	suite.Equal(newest.ID().String(), page.Orders[0].OrderID)
	suite.Equal(middle.ID().String(), page.Orders[1].OrderID)
	suite.Equal(oldest.ID().String(), page.Orders[2].OrderID)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_Pagination_TotalSpansAllPages() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := range 5 {
		seeded := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	}

	firstPage, err := queries.NewGetOrdersByUserQuery("user-42", 2, 0, "", "")
	suite.Require().NoError(err)
	page, err := suite.handler.Handle(ctx, firstPage)
	suite.Require().NoError(err)
	suite.Equal(5, page.Total)
	suite.Len(page.Orders, 2)

	lastPage, err := queries.NewGetOrdersByUserQuery("user-42", 2, 4, "", "")
	suite.Require().NoError(err)
	page, err = suite.handler.Handle(ctx, lastPage)
	suite.Require().NoError(err)
	suite.Equal(5, page.Total)
	suite.Len(page.Orders, 1)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_StatusFilter_NarrowsPageAndTotal() {
	ctx := context.Background()
	now := time.Now().UTC()

	pending := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", now.Add(-2*time.Minute))
	suite.Require().NoError(suite.orderRepo.Add(ctx, pending))

	cancelled := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", now.Add(-time.Minute))
	suite.Require().NoError(cancelled.Cancel("Cancelled by user", now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, cancelled))

	query, err := queries.NewGetOrdersByUserQuery("user-42", 0, 0, "cancelled", "")
	suite.Require().NoError(err)

	page, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(1, page.Total)
	suite.Require().Len(page.Orders, 1)
	suite.Equal(cancelled.ID().String(), page.Orders[0].OrderID)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_StoreFilter_NarrowsPageAndTotal() {
	ctx := context.Background()
	now := time.Now().UTC()

	kapruka := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", now.Add(-2*time.Minute))
	flora := seedOrder(suite.T(), suite.stores, "lassana_flora", "user-42", now.Add(-time.Minute))
	for _, seeded := range []*order.Order{kapruka, flora} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	}

	query, err := queries.NewGetOrdersByUserQuery("user-42", 0, 0, "", "lassana_flora")
	suite.Require().NoError(err)

	page, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(1, page.Total)
	suite.Require().Len(page.Orders, 1)
	suite.Equal(flora.ID().String(), page.Orders[0].OrderID)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_OtherUsersOrders_AreExcluded() {
	ctx := context.Background()
	now := time.Now().UTC()

	mine := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", now.Add(-2*time.Minute))
	theirs := seedOrder(suite.T(), suite.stores, "kapruka", "user-99", now.Add(-time.Minute))
	for _, seeded := range []*order.Order{mine, theirs} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))
	}

	query, err := queries.NewGetOrdersByUserQuery("user-42", 0, 0, "", "")
	suite.Require().NoError(err)

	page, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(1, page.Total)
	suite.Require().Len(page.Orders, 1)
	suite.Equal(mine.ID().String(), page.Orders[0].OrderID)
}

func (suite *GetOrdersByUserQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrdersByUserQuery{})
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetOrdersByUserQueryIsNotConstructed)
}

func TestGetOrdersByUserQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrdersByUserQueryHandlerTestSuite))
}
