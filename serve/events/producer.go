// Package events publishes pipeline stage events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/charmbracelet/log"
)

// StageEvent is the JSON payload emitted per stage transition.
type StageEvent struct {
	RunID  string    `json:"run_id"`
	Stage  string    `json:"stage"`
	Status string    `json:"status"`
	TS     time.Time `json:"ts"`
}

// Producer wraps a sarama sync producer bound to one topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer connects to the brokers. Events are acked by the leader
// before Publish returns.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3

	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}
	log.Info("kafka producer ready", "brokers", brokers, "topic", topic)
	return &Producer{producer: p, topic: topic}, nil
}

// Publish emits one stage event, keyed by run id so a run's events stay
// in partition order.
func (p *Producer) Publish(ctx context.Context, runID, stage, status string) error {
	event := StageEvent{RunID: runID, Stage: stage, Status: status, TS: time.Now().UTC()}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal stage event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(runID),
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send stage event: %w", err)
	}
	return nil
}

// Close shuts the producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
