package kafka

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/spf13/viper"
)

// Client wraps a synchronous Kafka producer.
type Client struct {
	producer sarama.SyncProducer
}

// MustNewClient creates a Kafka producer for the configured brokers.
func MustNewClient() *Client {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(viper.GetString("kafka.brokers"), ",")

	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to create Kafka producer: %v", err))
	}

	slog.Info("Kafka producer created", "brokers", brokerList)

	return &Client{producer: producer}
}

// SendMessage writes value to topic, keyed by key.
func (c *Client) SendMessage(topic, key string, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(value),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	if _, _, err := c.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", topic, err)
	}

	return nil
}

// Close closes the producer for graceful shutdown.
func (c *Client) Close() error {
	return c.producer.Close()
}
