package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	"github.com/SscSPs/fx_transfer_app/internal/utils"
	"github.com/segmentio/kafka-go"
)

// TransferEvent is the message value published for every recorded transfer.
type TransferEvent struct {
	TransferID      string  `json:"transferId"`
	FromUser        string  `json:"fromUserId"`
	ToUser          string  `json:"toUserId"`
	FromAccount     string  `json:"fromAccountId"`
	ToAccount       string  `json:"toAccountId"`
	Amount          string  `json:"amount"`
	ConvertedAmount string  `json:"convertedAmount"`
	FromCurrency    string  `json:"fromCurrency"`
	ToCurrency      string  `json:"toCurrency"`
	ExchangeRate    *string `json:"exchangeRate"`
	Status          string  `json:"status"`
	FailureReason   string  `json:"failureReason,omitempty"`
	Timestamp       string  `json:"timestamp"`
}

// ReconciliationEvent flags a transfer whose source debit could not be reversed.
type ReconciliationEvent struct {
	TransferEvent
	Cause string `json:"cause"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes transfer events to Kafka, keyed by the sending user so
// a user's events stay ordered within a partition.
type Publisher struct {
	writer              messageWriter
	transferTopic       string
	reconciliationTopic string
}

// NewPublisher creates a publisher writing to the given brokers.
func NewPublisher(brokers []string, transferTopic, reconciliationTopic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}, transferTopic, reconciliationTopic)
}

// NewPublisherWithWriter lets callers supply their own writer. Its Topic must be unset.
func NewPublisherWithWriter(w messageWriter, transferTopic, reconciliationTopic string) *Publisher {
	return &Publisher{
		writer:              w,
		transferTopic:       transferTopic,
		reconciliationTopic: reconciliationTopic,
	}
}

var _ clients.TransferEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishTransfer(ctx context.Context, record domain.TransferRecord) error {
	return p.publish(ctx, p.transferTopic, record.FromUser, NewTransferEvent(record))
}

func (p *Publisher) PublishReconciliation(ctx context.Context, record domain.TransferRecord, cause error) error {
	event := ReconciliationEvent{TransferEvent: NewTransferEvent(record)}
	if cause != nil {
		event.Cause = cause.Error()
	}
	return p.publish(ctx, p.reconciliationTopic, record.FromUser, event)
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, topic, key string, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// NewTransferEvent renders amounts at the minor unit of their currency.
func NewTransferEvent(record domain.TransferRecord) TransferEvent {
	event := TransferEvent{
		TransferID:      record.TransferID,
		FromUser:        record.FromUser,
		ToUser:          record.ToUser,
		FromAccount:     record.FromAccount,
		ToAccount:       record.ToAccount,
		Amount:          utils.FormatWithCurrencyPrecision(record.SourceAmount, record.FromCurrency),
		ConvertedAmount: utils.FormatWithCurrencyPrecision(record.ConvertedAmount, record.ToCurrency),
		FromCurrency:    record.FromCurrency.String(),
		ToCurrency:      record.ToCurrency.String(),
		Status:          string(record.Status),
		FailureReason:   record.FailureReason,
		Timestamp:       record.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if record.ExchangeRate != nil {
		rate := record.ExchangeRate.String()
		event.ExchangeRate = &rate
	}
	return event
}
