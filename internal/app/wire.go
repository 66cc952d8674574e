//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	cart_clear_delete "github.com/peterPain01/SA-Microserices/internal/handlers/rest/cart_clear_delete"
	cart_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/cart_get"
	cart_item_delete "github.com/peterPain01/SA-Microserices/internal/handlers/rest/cart_item_delete"
	cart_item_post "github.com/peterPain01/SA-Microserices/internal/handlers/rest/cart_item_post"
	cart_item_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/cart_item_put"
	checkout_post "github.com/peterPain01/SA-Microserices/internal/handlers/rest/checkout_post"
	deliveries_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/deliveries_get"
	delivery_assign_post "github.com/peterPain01/SA-Microserices/internal/handlers/rest/delivery_assign_post"
	delivery_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/delivery_get"
	delivery_order_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/delivery_order_get"
	delivery_stats_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/delivery_stats_get"
	delivery_status_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/delivery_status_put"
	driver_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/driver_get"
	driver_location_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/driver_location_put"
	driver_post "github.com/peterPain01/SA-Microserices/internal/handlers/rest/driver_post"
	driver_status_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/driver_status_put"
	drivers_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/drivers_get"
	order_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/order_get"
	order_post "github.com/peterPain01/SA-Microserices/internal/handlers/rest/order_post"
	order_status_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/order_status_put"
	orders_get "github.com/peterPain01/SA-Microserices/internal/handlers/rest/orders_get"
	payment_status_put "github.com/peterPain01/SA-Microserices/internal/handlers/rest/payment_status_put"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/handlers/kafka-consumer/user_checkout"
	"github.com/peterPain01/SA-Microserices/internal/handlers/tasks/assignment_retry"
	"github.com/peterPain01/SA-Microserices/internal/pkg/config"
	"github.com/peterPain01/SA-Microserices/internal/pkg/factory/delivery_schedule"
	"github.com/peterPain01/SA-Microserices/internal/pkg/factory/order_reconcile"
	"github.com/peterPain01/SA-Microserices/internal/pkg/kafka"

	cartRepo "github.com/peterPain01/SA-Microserices/internal/repository/cart"
	deliveryRepo "github.com/peterPain01/SA-Microserices/internal/repository/delivery"
	driverRepo "github.com/peterPain01/SA-Microserices/internal/repository/driver"
	orderRepo "github.com/peterPain01/SA-Microserices/internal/repository/order"
	productRepo "github.com/peterPain01/SA-Microserices/internal/repository/product"
	cartService "github.com/peterPain01/SA-Microserices/internal/service/cart"
	deliveryService "github.com/peterPain01/SA-Microserices/internal/service/delivery"
	driverService "github.com/peterPain01/SA-Microserices/internal/service/driver"
	matcherService "github.com/peterPain01/SA-Microserices/internal/service/matcher"
	orderService "github.com/peterPain01/SA-Microserices/internal/service/order"

	"github.com/peterPain01/SA-Microserices/pkg/background"
	"github.com/peterPain01/SA-Microserices/pkg/keyedmutex"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
	"github.com/peterPain01/SA-Microserices/pkg/querier"
	"github.com/peterPain01/SA-Microserices/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	RetryInterval time.Duration
)

// CartApp собирает зависимости cart-service: REST корзины и
// публикация UserCheckout в user-events.
type CartApp struct {
	ServiceCart ServiceCart
}

type ServiceCart interface {
	cart_get.Service
	cart_item_post.Service
	cart_item_put.Service
	cart_item_delete.Service
	cart_clear_delete.Service
	checkout_post.Service
}

func InitializeCartApp(
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
) (*CartApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideCartRepository,
		provideProductRepository,
		provideServiceCart,

		wire.Struct(new(CartApp), "*"),

		wire.Bind(new(ServiceCart), new(*cartService.Cart)),

		wire.Bind(new(cartService.Repository), new(*cartRepo.Repository)),
		wire.Bind(new(cartService.ProductStore), new(*productRepo.Repository)),
		wire.Bind(new(cartService.EventPublisher), new(*kafka.Producer)),
		wire.Bind(new(cartService.TxManager), new(*tx.Manager)),
	)
	return &CartApp{}, nil
}

// OrderApp собирает зависимости order-service: создание заказа из
// события UserCheckout, операции REST и публикация в order-events.
type OrderApp struct {
	ServiceOrder ServiceOrder
}

type ServiceOrder interface {
	order_post.Service
	order_get.Service
	orders_get.Service
	order_status_put.Service
	payment_status_put.Service
	user_checkout.Service
}

func InitializeOrderApp(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
) (*OrderApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideServiceOrder,

		wire.Struct(new(OrderApp), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.EventPublisher), new(*kafka.Producer)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
	)
	return &OrderApp{}, nil
}

// DeliveryApp собирает зависимости delivery-service: доставки и
// водители, подбор водителя, обработка order-events и фоновый досбор
// неназначенных доставок.
type DeliveryApp struct {
	ServiceDelivery   ServiceDelivery
	ServiceDriver     ServiceDriver
	HandlerFactory    *order_reconcile.HandlerFactory
	BackgroundWorkers *background.Worker
}

type ServiceDelivery interface {
	delivery_get.Service
	delivery_order_get.Service
	deliveries_get.Service
	delivery_status_put.Service
	delivery_assign_post.Service
	delivery_stats_get.Service
}

type ServiceDriver interface {
	driver_post.Service
	driver_get.Service
	drivers_get.Service
	driver_status_put.Service
	driver_location_put.Service
}

func InitializeDeliveryApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
	cfg *config.Config,
) (*DeliveryApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideRetryInterval,
		providePickupLocation,

		provideDeliveryRepository,
		provideDriverRepository,

		keyedmutex.New,
		delivery_schedule.New,
		provideServiceMatcher,
		provideServiceDriver,
		provideServiceDelivery,
		provideHandlerFactory,

		provideAssignmentRetryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(DeliveryApp), "*"),

		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceDriver), new(*driverService.Driver)),

		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.DriverMatcher), new(*matcherService.Matcher)),
		wire.Bind(new(deliveryService.DriverService), new(*driverService.Driver)),
		wire.Bind(new(deliveryService.EventPublisher), new(*kafka.Producer)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Bind(new(matcherService.DeliveryRepository), new(*deliveryRepo.Repository)),
		wire.Bind(new(matcherService.DriverRepository), new(*driverRepo.Repository)),
		wire.Bind(new(matcherService.EventPublisher), new(*kafka.Producer)),
		wire.Bind(new(matcherService.ScheduleFactory), new(*delivery_schedule.ScheduleFactory)),
		wire.Bind(new(matcherService.Locker), new(*keyedmutex.KeyedMutex)),

		wire.Bind(new(driverService.Repository), new(*driverRepo.Repository)),
		wire.Bind(new(driverService.TxManager), new(*tx.Manager)),

		wire.Bind(new(order_reconcile.DeliveryService), new(*deliveryService.Delivery)),
		wire.Bind(new(assignment_retry.Service), new(*deliveryService.Delivery)),
	)
	return &DeliveryApp{}, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideCartRepository(querier *querier.Querier) *cartRepo.Repository {
	return cartRepo.New(querier)
}

func provideProductRepository(querier *querier.Querier) *productRepo.Repository {
	return productRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideDriverRepository(querier *querier.Querier) *driverRepo.Repository {
	return driverRepo.New(querier)
}

func provideServiceCart(
	repository cartService.Repository,
	productStore cartService.ProductStore,
	publisher cartService.EventPublisher,
	txManager cartService.TxManager,
) *cartService.Cart {
	return cartService.New(repository, productStore, publisher, txManager)
}

func provideServiceOrder(
	log logger.Logger,
	repository orderService.Repository,
	publisher orderService.EventPublisher,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(log, repository, publisher, txManager)
}

func provideServiceMatcher(
	log logger.Logger,
	deliveries matcherService.DeliveryRepository,
	drivers matcherService.DriverRepository,
	publisher matcherService.EventPublisher,
	schedule matcherService.ScheduleFactory,
	locker matcherService.Locker,
) *matcherService.Matcher {
	return matcherService.New(log, deliveries, drivers, publisher, schedule, locker)
}

func provideServiceDriver(
	repository driverService.Repository,
	txManager driverService.TxManager,
) *driverService.Driver {
	return driverService.New(repository, txManager)
}

func provideServiceDelivery(
	log logger.Logger,
	repository deliveryService.Repository,
	driverMatcher deliveryService.DriverMatcher,
	drivers deliveryService.DriverService,
	publisher deliveryService.EventPublisher,
	txManager deliveryService.TxManager,
	pickup entities.Location,
) *deliveryService.Delivery {
	return deliveryService.New(
		log,
		repository,
		driverMatcher,
		drivers,
		publisher,
		txManager,
		pickup,
	)
}

func provideHandlerFactory(deliveries order_reconcile.DeliveryService) *order_reconcile.HandlerFactory {
	return order_reconcile.NewHandlerFactory(deliveries)
}

func provideRetryInterval(cfg *config.Config) RetryInterval {
	return RetryInterval(cfg.Tasks.AssignmentRetryInterval)
}

// providePickupLocation строит точку забора из конфигурации склада.
func providePickupLocation(cfg *config.Config) entities.Location {
	return entities.Location{
		Address:      cfg.Warehouse.Address,
		Longitude:    cfg.Warehouse.Longitude,
		Latitude:     cfg.Warehouse.Latitude,
		ContactName:  cfg.Warehouse.ContactName,
		ContactPhone: cfg.Warehouse.ContactPhone,
	}
}

func provideAssignmentRetryTask(
	log logger.Logger,
	deliveries assignment_retry.Service,
	interval RetryInterval,
) *assignment_retry.AssignmentRetry {
	return assignment_retry.NewAssignmentRetry(log, deliveries, time.Duration(interval))
}

func provideTaskList(
	assignmentRetryTask *assignment_retry.AssignmentRetry,
) []background.Task {
	return []background.Task{
		assignmentRetryTask,
	}
}

func provideBackgroundWorkers(
	ctx context.Context,
	log logger.Logger,
	tasks []background.Task,
) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
