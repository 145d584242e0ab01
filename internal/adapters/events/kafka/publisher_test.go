package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	eventskafka "github.com/SscSPs/fx_transfer_app/internal/adapters/events/kafka"
	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleRecord() domain.TransferRecord {
	rate := decimal.RequireFromString("110.45")
	return domain.TransferRecord{
		TransferID:      "t-1",
		FromUser:        "u-1",
		ToUser:          "u-2",
		FromAccount:     "a-1",
		ToAccount:       "a-2",
		SourceAmount:    decimal.RequireFromString("10.005"),
		ConvertedAmount: decimal.RequireFromString("1105.05225"),
		FromCurrency:    "USD",
		ToCurrency:      "JPY",
		ExchangeRate:    &rate,
		Status:          domain.TransferSuccess,
		Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPublisher_PublishTransfer(t *testing.T) {
	w := &fakeWriter{}
	p := eventskafka.NewPublisherWithWriter(w, "transfers", "reconciliation")

	require.NoError(t, p.PublishTransfer(context.Background(), sampleRecord()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "transfers", msg.Topic)
	assert.Equal(t, "u-1", string(msg.Key))

	var event eventskafka.TransferEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "10.01", event.Amount)
	assert.Equal(t, "1105", event.ConvertedAmount)
	require.NotNil(t, event.ExchangeRate)
	assert.Equal(t, "110.45", *event.ExchangeRate)
	assert.Equal(t, "2026-01-02T03:04:05Z", event.Timestamp)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_PublishReconciliation(t *testing.T) {
	w := &fakeWriter{}
	p := eventskafka.NewPublisherWithWriter(w, "transfers", "reconciliation")

	record := sampleRecord()
	record.Status = domain.TransferFailed
	record.FailureReason = "credit failed"
	require.NoError(t, p.PublishReconciliation(context.Background(), record, errors.New("ledger down")))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "reconciliation", w.msgs[0].Topic)

	var event eventskafka.ReconciliationEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, "ledger down", event.Cause)
	assert.Equal(t, "FAILED", event.Status)
}

func TestPublisher_WriteFailure(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	p := eventskafka.NewPublisherWithWriter(w, "transfers", "reconciliation")

	err := p.PublishTransfer(context.Background(), sampleRecord())
	assert.ErrorContains(t, err, "broker unavailable")
}

func TestNoopPublisher(t *testing.T) {
	var p eventskafka.NoopPublisher
	assert.NoError(t, p.PublishTransfer(context.Background(), sampleRecord()))
	assert.NoError(t, p.PublishReconciliation(context.Background(), sampleRecord(), errors.New("x")))
}

func TestNewTransferEvent_SameCurrency(t *testing.T) {
	record := sampleRecord()
	record.ToCurrency = "USD"
	record.ExchangeRate = nil
	record.ConvertedAmount = record.SourceAmount

	event := eventskafka.NewTransferEvent(record)
	assert.Nil(t, event.ExchangeRate)
	assert.Equal(t, event.Amount, event.ConvertedAmount)
}
