package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled                 bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers                 []string `env:"KAFKA_BROKERS" envSeparator:","`
	OutboxTopicName         string   `env:"NOTIFICATION_OUTBOX_TOPIC_NAME" envDefault:"bensine.notification.outbox"`
	DeliveryTopicName       string   `env:"NOTIFICATION_DELIVERY_TOPIC_NAME" envDefault:"bensine.notification.delivery"`
	DeliveryConsumerGroupID string   `env:"NOTIFICATION_DELIVERY_CONSUMER_GROUP_ID" envDefault:"bensine-notification-delivery"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool                   { return cfg.raw.Enabled && len(cfg.raw.Brokers) > 0 }
func (cfg *kafka) Brokers() []string               { return cfg.raw.Brokers }
func (cfg *kafka) OutboxTopic() string             { return cfg.raw.OutboxTopicName }
func (cfg *kafka) DeliveryTopic() string           { return cfg.raw.DeliveryTopicName }
func (cfg *kafka) DeliveryConsumerGroupID() string { return cfg.raw.DeliveryConsumerGroupID }

func (cfg *kafka) OutboxProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}

func (cfg *kafka) DeliveryConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}
