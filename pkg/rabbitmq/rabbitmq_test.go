package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	a := m.Called(name, durable, autoDelete, exclusive, noWait)
	return amqp.Queue{Name: name}, a.Error(0)
}

func (m *mockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	a := m.Called(exchange, key, msg)
	return a.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestNewClient_DeclaresDurableQueue(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "gem_events", true, false, false, false).Return(nil).Once()

	c, err := newClient(ch, "")
	require.NoError(t, err)
	assert.Equal(t, "gem_events", c.Queue())
	ch.AssertExpectations(t)
}

func TestNewClient_DeclareFailure(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "custom", true, false, false, false).Return(errors.New("access refused")).Once()

	_, err := newClient(ch, "custom")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access refused")
}

func TestPublishEvent(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "gem_events", true, false, false, false).Return(nil)
	c, err := newClient(ch, "gem_events")
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ch.On("Publish", "", "gem_events", mock.MatchedBy(func(msg amqp.Publishing) bool {
		var ev Event
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			msg.Type == "gem.created" &&
			ev.GemID == "abc" && ev.Name == "Imperial Ruby" && ev.OccurredAt.Equal(at)
	})).Return(nil).Once()

	err = c.PublishEvent(Event{Event: "gem.created", GemID: "abc", Name: "Imperial Ruby", OccurredAt: at})
	assert.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublishEvent_Failure(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "gem_events", true, false, false, false).Return(nil)
	ch.On("Publish", "", "gem_events", mock.Anything).Return(amqp.ErrClosed).Once()
	c, err := newClient(ch, "gem_events")
	require.NoError(t, err)

	err = c.PublishEvent(Event{Event: "gem.deleted", GemID: "abc"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestClose(t *testing.T) {
	ch := new(mockChannel)
	ch.On("QueueDeclare", "gem_events", true, false, false, false).Return(nil)
	ch.On("Close").Return(nil).Once()
	c, err := newClient(ch, "gem_events")
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	ch.AssertExpectations(t)
}
