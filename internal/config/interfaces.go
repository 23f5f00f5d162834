package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Client interface {
	Host() string
	Port() int
	Address() string
}

type Server interface {
	Client
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type DocumentStore interface {
	DSN() string
	DatabaseName() string
	Bucket() string
}

type Cache interface {
	Enabled() bool
	Address() string
	Password() string
	DB() int
	SessionTTL() time.Duration
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	OutboxTopic() string
	DeliveryTopic() string
	DeliveryConsumerGroupID() string
	OutboxProducerConfig() *sarama.Config
	DeliveryConsumerConfig() *sarama.Config
}

type Auth interface {
	SessionTTL() time.Duration
	BcryptCost() int
}
