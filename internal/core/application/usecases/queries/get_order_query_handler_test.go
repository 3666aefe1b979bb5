package queries_test

import (
	"context"
	"testing"
	"time"

	"ordersim/internal/adapters/out/postgres/orderrepo"
	"ordersim/internal/core/application/usecases/queries"
	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker dependency in
// query tests, where nothing inspects tracked aggregates.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.OrderID, interface{}) {}

// seedOrder builds a pending order placed at createdAt with a fixed pair
// of line items, for inserting through the write repository.
func seedOrder(
	t *testing.T,
	stores kernel.StoreSet,
	storeName, userID string,
	createdAt time.Time,
) *order.Order {
	t.Helper()

	store, err := stores.Resolve(storeName)
	if err != nil {
		t.Fatalf("resolve store %s: %v", storeName, err)
	}

	first, err := order.NewItem("prod-1", "Ceylon tea sampler", 990, 2)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	second, err := order.NewItem("prod-2", "Gift wrap", 2200, 1)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}

	seeded, err := order.NewOrder(
		kernel.GenerateOrderID(store, createdAt),
		userID,
		store,
		[]order.Item{first, second},
		createdAt.Add(3*time.Minute),
		createdAt.Add(time.Minute),
		createdAt,
	)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	return seeded
}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	stores    kernel.StoreSet
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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
	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, suite.stores, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ExistingOrder_ReturnsFullReadModel() {
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedOrder(suite.T(), suite.stores, "kapruka", "user-42", now)
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(seeded.ID().String(), response.OrderID)
	suite.Equal("user-42", response.UserID)
	suite.Equal("kapruka", response.Store)
	suite.Equal("pending", response.Status)
	suite.InEpsilon(4180., response.TotalAmount, 1e-9)

	suite.Require().Len(response.Items, 2)
	suite.Equal("prod-1", response.Items[0].ProductID)
	suite.Equal("Ceylon tea sampler", response.Items[0].Title)
	suite.InEpsilon(990., response.Items[0].Price, 1e-9)
	suite.Equal(2, response.Items[0].Quantity)
	suite.InEpsilon(1980., response.Items[0].Subtotal, 1e-9)
	suite.InEpsilon(2200., response.Items[1].Subtotal, 1e-9)

	suite.Require().Len(response.History, 1)
	suite.Equal("pending", response.History[0].Status)
	suite.Equal("Order created successfully for kapruka", response.History[0].Note)

	suite.Require().NotNil(response.NextStatusUpdate)
	suite.WithinDuration(now.Add(time.Minute), *response.NextStatusUpdate, time.Millisecond)
	suite.WithinDuration(now.Add(3*time.Minute), response.EstimatedDelivery, time.Millisecond)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_CancelledOrder_HasNoNextUpdate() {
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := seedOrder(suite.T(), suite.stores, "onlinekade", "user-3", now)
	suite.Require().NoError(seeded.Cancel("Cancelled by user", now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("cancelled", response.Status)
	suite.Nil(response.NextStatusUpdate)
	suite.Require().Len(response.History, 2)
	suite.Equal("Cancelled by user", response.History[1].Note)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	missing, err := kernel.OrderIDFromString("GLW-1756600000000-DEADBEEF")
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(missing)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
