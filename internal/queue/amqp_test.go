package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked  []uint64
	ackErr error
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = append(f.acked, tag)
	return f.ackErr
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error { return nil }

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error { return nil }

func TestDeliverAcksFailedJobs(t *testing.T) {
	ack := &fakeAcknowledger{}
	var got []byte

	deliver("campaign_sends", func(ctx context.Context, payload []byte) error {
		got = payload
		return errors.New("provider down")
	}, amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(`{"contact_id":1}`)})

	assert.Equal(t, `{"contact_id":1}`, string(got))
	assert.Equal(t, []uint64{7}, ack.acked)
}

func TestDeliverLogsAckFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ack := &fakeAcknowledger{ackErr: errors.New("channel/connection is not open")}
	deliver("campaign_sends", func(ctx context.Context, payload []byte) error { return nil },
		amqp.Delivery{Acknowledger: ack, DeliveryTag: 3})

	require.NotEmpty(t, hook.AllEntries())
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "failed to ack delivery", entry.Message)
	assert.Equal(t, uint64(3), entry.Data["delivery_tag"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "channel/connection is not open")
}
