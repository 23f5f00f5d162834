package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/simoilconte/Bensine/internal/config"
	kafkaconv "github.com/simoilconte/Bensine/internal/converter/kafka"
	tmplconv "github.com/simoilconte/Bensine/internal/converter/template"
	"github.com/simoilconte/Bensine/internal/model"
	customerrepo "github.com/simoilconte/Bensine/internal/repository/customer"
	documentrepo "github.com/simoilconte/Bensine/internal/repository/document"
	eventrepo "github.com/simoilconte/Bensine/internal/repository/event"
	fueltyperepo "github.com/simoilconte/Bensine/internal/repository/fueltype"
	notificationrepo "github.com/simoilconte/Bensine/internal/repository/notification"
	partrepo "github.com/simoilconte/Bensine/internal/repository/part"
	partrequestrepo "github.com/simoilconte/Bensine/internal/repository/partrequest"
	sessionrepo "github.com/simoilconte/Bensine/internal/repository/session"
	supplierrepo "github.com/simoilconte/Bensine/internal/repository/supplier"
	userrepo "github.com/simoilconte/Bensine/internal/repository/user"
	vehiclerepo "github.com/simoilconte/Bensine/internal/repository/vehicle"
	authsvc "github.com/simoilconte/Bensine/internal/service/auth"
	dlvconsumer "github.com/simoilconte/Bensine/internal/service/consumer/delivery"
	customersvc "github.com/simoilconte/Bensine/internal/service/customer"
	eventsvc "github.com/simoilconte/Bensine/internal/service/event"
	fueltypesvc "github.com/simoilconte/Bensine/internal/service/fueltype"
	notificationsvc "github.com/simoilconte/Bensine/internal/service/notification"
	partsvc "github.com/simoilconte/Bensine/internal/service/part"
	partrequestsvc "github.com/simoilconte/Bensine/internal/service/partrequest"
	ntfproducer "github.com/simoilconte/Bensine/internal/service/producer/notification"
	suppliersvc "github.com/simoilconte/Bensine/internal/service/supplier"
	usersvc "github.com/simoilconte/Bensine/internal/service/user"
	vehiclesvc "github.com/simoilconte/Bensine/internal/service/vehicle"
	"github.com/simoilconte/Bensine/internal/transport/http/middleware"
	thttp "github.com/simoilconte/Bensine/internal/transport/http/v1"
	"github.com/simoilconte/Bensine/platform/closer"
	"github.com/simoilconte/Bensine/platform/db/migrator"
	"github.com/simoilconte/Bensine/platform/db/txmanager"
	"github.com/simoilconte/Bensine/platform/kafka"
	"github.com/simoilconte/Bensine/platform/kafka/consumer"
	kafkamw "github.com/simoilconte/Bensine/platform/kafka/middleware"
	"github.com/simoilconte/Bensine/platform/kafka/producer"
	"github.com/simoilconte/Bensine/platform/logger"
)

type Converter interface {
	NotificationToPayload(n model.RenderedNotification) ([]byte, error)
	DeliveryReportToModel(data []byte) (model.DeliveryReport, error)
}

type DeliveryConsumer interface {
	RunDeliveryConsume(ctx context.Context) error
}

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	authsvc.UserRepository
	customersvc.UserRepository
	partrequestsvc.UserRepository
	usersvc.UserRepository
}

type CustomerRepository interface {
	customersvc.CustomerRepository
	partrequestsvc.CustomerRepository
	usersvc.CustomerRepository
	vehiclesvc.CustomerRepository
}

type VehicleRepository interface {
	customersvc.VehicleRepository
	fueltypesvc.VehicleRepository
	partsvc.VehicleRepository
	partrequestsvc.VehicleRepository
	vehiclesvc.VehicleRepository
}

type PartRepository interface {
	partsvc.PartRepository
	partrequestsvc.PartRepository
	suppliersvc.PartRepository
}

type SupplierRepository interface {
	partsvc.SupplierRepository
	suppliersvc.SupplierRepository
}

type PartRequestRepository interface {
	customersvc.PartRequestRepository
	partsvc.PartRequestRepository
	partrequestsvc.PartRequestRepository
	vehiclesvc.PartRequestRepository
}

type DocumentStore interface {
	customersvc.DocumentStore
	vehiclesvc.DocumentStore
}

type AuthService interface {
	thttp.AuthService
	middleware.SessionResolver
}

type EventService interface {
	thttp.EventService
	customersvc.EventRecorder
}

type NotificationService interface {
	thttp.NotificationService
	partrequestsvc.Outbox
	dlvconsumer.DeliveryService
}

type di struct {
	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator
	tx       TxManager

	mongo       *mongo.Client
	redis       redis.UniversalClient
	documents   DocumentStore
	sessionRepo authsvc.SessionRepository

	userRepo         UserRepository
	customerRepo     CustomerRepository
	vehicleRepo      VehicleRepository
	partRepo         PartRepository
	supplierRepo     SupplierRepository
	fuelTypeRepo     fueltypesvc.FuelTypeRepository
	partRequestRepo  PartRequestRepository
	eventRepo        eventsvc.EventRepository
	notificationRepo notificationsvc.NotificationRepository

	conv Converter

	syncProducer     sarama.SyncProducer
	outboxProducer   kafka.Producer
	announcer        partrequestsvc.Announcer
	consumerGroup    sarama.ConsumerGroup
	deliveryConsumer kafka.Consumer
	deliveryService  DeliveryConsumer

	authService         AuthService
	userService         thttp.UserService
	customerService     thttp.CustomerService
	vehicleService      thttp.VehicleService
	partService         thttp.PartService
	supplierService     thttp.SupplierService
	fuelTypeService     thttp.FuelTypeService
	partRequestService  thttp.PartRequestService
	eventService        EventService
	notificationService NotificationService

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) TxManager(ctx context.Context) TxManager {
	if d.tx == nil {
		d.tx = txmanager.New(d.DBPool(ctx))
	}

	return d.tx
}

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(config.C().Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping mongodb: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

// Redis is nil when the session cache is switched off.
func (d *di) Redis(ctx context.Context) redis.UniversalClient {
	cfg := config.C().Redis
	if d.redis == nil && cfg.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Address(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		closer.AddNamed("Redis Client",
			func(ctx context.Context) error {
				return rdb.Close()
			})

		if err := rdb.Ping(ctx).Err(); err != nil {
			panic(fmt.Sprintf("failed to ping redis: %v\n", err))
		}

		d.redis = rdb
	}

	return d.redis
}

func (d *di) DocumentStore(ctx context.Context) DocumentStore {
	if d.documents == nil {
		cfg := config.C().Mongo
		d.documents = documentrepo.NewDocumentRepository(
			d.MongoDB(ctx).Database(cfg.DatabaseName()),
			cfg.Bucket(),
		)
	}

	return d.documents
}

func (d *di) SessionRepository(ctx context.Context) authsvc.SessionRepository {
	if d.sessionRepo == nil {
		store := sessionrepo.NewSessionRepository(d.DBPool(ctx))

		if rdb := d.Redis(ctx); rdb != nil {
			d.sessionRepo = sessionrepo.NewCachedRepository(store, rdb, config.C().Redis.SessionTTL())
		} else {
			d.sessionRepo = store
		}
	}

	return d.sessionRepo
}

func (d *di) UserRepository(ctx context.Context) UserRepository {
	if d.userRepo == nil {
		d.userRepo = userrepo.NewUserRepository(d.DBPool(ctx))
	}

	return d.userRepo
}

func (d *di) CustomerRepository(ctx context.Context) CustomerRepository {
	if d.customerRepo == nil {
		d.customerRepo = customerrepo.NewCustomerRepository(d.DBPool(ctx))
	}

	return d.customerRepo
}

func (d *di) VehicleRepository(ctx context.Context) VehicleRepository {
	if d.vehicleRepo == nil {
		d.vehicleRepo = vehiclerepo.NewVehicleRepository(d.DBPool(ctx))
	}

	return d.vehicleRepo
}

func (d *di) PartRepository(ctx context.Context) PartRepository {
	if d.partRepo == nil {
		d.partRepo = partrepo.NewPartRepository(d.DBPool(ctx))
	}

	return d.partRepo
}

func (d *di) SupplierRepository(ctx context.Context) SupplierRepository {
	if d.supplierRepo == nil {
		d.supplierRepo = supplierrepo.NewSupplierRepository(d.DBPool(ctx))
	}

	return d.supplierRepo
}

func (d *di) FuelTypeRepository(ctx context.Context) fueltypesvc.FuelTypeRepository {
	if d.fuelTypeRepo == nil {
		d.fuelTypeRepo = fueltyperepo.NewFuelTypeRepository(d.DBPool(ctx))
	}

	return d.fuelTypeRepo
}

func (d *di) PartRequestRepository(ctx context.Context) PartRequestRepository {
	if d.partRequestRepo == nil {
		d.partRequestRepo = partrequestrepo.NewPartRequestRepository(d.DBPool(ctx))
	}

	return d.partRequestRepo
}

func (d *di) EventRepository(ctx context.Context) eventsvc.EventRepository {
	if d.eventRepo == nil {
		d.eventRepo = eventrepo.NewEventRepository(d.DBPool(ctx))
	}

	return d.eventRepo
}

func (d *di) NotificationRepository(ctx context.Context) notificationsvc.NotificationRepository {
	if d.notificationRepo == nil {
		d.notificationRepo = notificationrepo.NewNotificationRepository(d.DBPool(ctx))
	}

	return d.notificationRepo
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = kafkaconv.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.OutboxProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) OutboxProducer(ctx context.Context) kafka.Producer {
	if d.outboxProducer == nil {
		d.outboxProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.OutboxTopic(),
			logger.L(),
		)
	}

	return d.outboxProducer
}

// Announcer publishes new outbox rows when Kafka is on and drops them otherwise.
func (d *di) Announcer(ctx context.Context) partrequestsvc.Announcer {
	if d.announcer == nil {
		if config.C().Kafka.Enabled() {
			d.announcer = ntfproducer.NewNotificationProducer(
				d.OutboxProducer(ctx),
				d.KafkaConverter(ctx),
				tmplconv.NewRenderer(),
			)
		} else {
			d.announcer = ntfproducer.NewDiscardAnnouncer()
		}
	}

	return d.announcer
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.DeliveryConsumerGroupID(),
			cfg.Kafka.DeliveryConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) DeliveryReportConsumer(ctx context.Context) kafka.Consumer {
	if d.deliveryConsumer == nil {
		d.deliveryConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.DeliveryTopic(),
			},
			logger.L(),
			kafkamw.Recovery(logger.L()),
			kafkamw.Logging(logger.L()),
		)
	}

	return d.deliveryConsumer
}

func (d *di) DeliveryConsumer(ctx context.Context) DeliveryConsumer {
	if d.deliveryService == nil {
		d.deliveryService = dlvconsumer.NewDeliveryConsumer(
			d.DeliveryReportConsumer(ctx),
			d.KafkaConverter(ctx),
			d.NotificationService(ctx),
		)
	}

	return d.deliveryService
}

func (d *di) AuthService(ctx context.Context) AuthService {
	if d.authService == nil {
		cfg := config.C()
		d.authService = authsvc.NewAuthService(
			d.SessionRepository(ctx),
			d.UserRepository(ctx),
			d.TxManager(ctx),
			cfg.Auth.SessionTTL(),
			cfg.Auth.BcryptCost(),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.authService
}

func (d *di) EventService(ctx context.Context) EventService {
	if d.eventService == nil {
		d.eventService = eventsvc.NewEventService(
			d.EventRepository(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.eventService
}

func (d *di) NotificationService(ctx context.Context) NotificationService {
	if d.notificationService == nil {
		cfg := config.C()
		d.notificationService = notificationsvc.NewNotificationService(
			d.NotificationRepository(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.notificationService
}

func (d *di) UserService(ctx context.Context) thttp.UserService {
	if d.userService == nil {
		cfg := config.C()
		d.userService = usersvc.NewUserService(
			d.UserRepository(ctx),
			d.CustomerRepository(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.userService
}

func (d *di) CustomerService(ctx context.Context) thttp.CustomerService {
	if d.customerService == nil {
		cfg := config.C()
		d.customerService = customersvc.NewCustomerService(
			d.CustomerRepository(ctx),
			d.VehicleRepository(ctx),
			d.PartRequestRepository(ctx),
			d.UserRepository(ctx),
			d.DocumentStore(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.customerService
}

func (d *di) VehicleService(ctx context.Context) thttp.VehicleService {
	if d.vehicleService == nil {
		cfg := config.C()
		d.vehicleService = vehiclesvc.NewVehicleService(
			d.VehicleRepository(ctx),
			d.CustomerRepository(ctx),
			d.PartRequestRepository(ctx),
			d.DocumentStore(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.vehicleService
}

func (d *di) PartService(ctx context.Context) thttp.PartService {
	if d.partService == nil {
		cfg := config.C()
		d.partService = partsvc.NewPartService(
			d.PartRepository(ctx),
			d.SupplierRepository(ctx),
			d.VehicleRepository(ctx),
			d.PartRequestRepository(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.partService
}

func (d *di) SupplierService(ctx context.Context) thttp.SupplierService {
	if d.supplierService == nil {
		cfg := config.C()
		d.supplierService = suppliersvc.NewSupplierService(
			d.SupplierRepository(ctx),
			d.PartRepository(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.supplierService
}

func (d *di) FuelTypeService(ctx context.Context) thttp.FuelTypeService {
	if d.fuelTypeService == nil {
		cfg := config.C()
		d.fuelTypeService = fueltypesvc.NewFuelTypeService(
			d.FuelTypeRepository(ctx),
			d.VehicleRepository(ctx),
			d.EventService(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.fuelTypeService
}

func (d *di) PartRequestService(ctx context.Context) thttp.PartRequestService {
	if d.partRequestService == nil {
		cfg := config.C()
		d.partRequestService = partrequestsvc.NewPartRequestService(
			d.PartRequestRepository(ctx),
			d.CustomerRepository(ctx),
			d.VehicleRepository(ctx),
			d.PartRepository(ctx),
			d.UserRepository(ctx),
			d.EventService(ctx),
			d.NotificationService(ctx),
			d.Announcer(ctx),
			d.TxManager(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.partRequestService
}

func (d *di) APIHandler(ctx context.Context) http.Handler {
	return thttp.NewRouter(
		d.AuthService(ctx),
		thttp.NewAuthHandler(d.AuthService(ctx)),
		thttp.NewUserHandler(d.UserService(ctx)),
		thttp.NewCustomerHandler(d.CustomerService(ctx)),
		thttp.NewVehicleHandler(d.VehicleService(ctx)),
		thttp.NewPartHandler(d.PartService(ctx)),
		thttp.NewCatalogHandler(d.SupplierService(ctx), d.FuelTypeService(ctx)),
		thttp.NewPartRequestHandler(d.PartRequestService(ctx)),
		thttp.NewAdminHandler(d.NotificationService(ctx), d.EventService(ctx)),
	)
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
