package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []publishedMessage
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel) *Publisher {
	p := newPublisher(ch, "booking.events", "court-booking", nil)
	p.now = func() time.Time {
		return time.Date(2024, time.June, 3, 18, 5, 0, 0, time.FixedZone("IST", 5*3600+1800))
	}
	return p
}

func TestPublishJSON_Message(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	payload := map[string]any{"booking_id": 101, "total_amount": 1150}
	require.NoError(t, p.PublishJSON(context.Background(), "booking.created", payload))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "booking.events", got.exchange)
	assert.Equal(t, "booking.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "booking.created", got.msg.Type)
	assert.Equal(t, "court-booking", got.msg.AppId)
	assert.NotEmpty(t, got.msg.MessageId)
	assert.Equal(t, time.Date(2024, time.June, 3, 12, 35, 0, 0, time.UTC), got.msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, float64(101), body["booking_id"])
	assert.Equal(t, float64(1150), body["total_amount"])
}

func TestPublishJSON_Errors(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	err := p.PublishJSON(context.Background(), "booking.created", make(chan int))
	assert.ErrorIs(t, err, ErrMarshal)
	assert.Empty(t, ch.published)

	ch.err = errors.New("channel closed")
	err = p.PublishJSON(context.Background(), "booking.cancelled", map[string]int{"booking_id": 1})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestClose_WithoutConnection(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.PublishJSON(context.Background(), "booking.created", make(chan int)))
	assert.NoError(t, p.Close())
}
