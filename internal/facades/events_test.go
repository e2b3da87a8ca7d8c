package facades

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/models"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	event := models.Event{
		ID:         "evt-1",
		Type:       models.EventHousingCreated,
		Key:        "42",
		OccurredAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"id": 42},
	}

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, []byte("42"), msgs[0].Key)
			assert.Equal(t, models.EventHousingCreated, string(msgs[0].Headers[0].Value))

			var got models.Event
			require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
			assert.Equal(t, "evt-1", got.ID)
			assert.Equal(t, models.EventHousingCreated, got.Type)
			return nil
		})

	NewEventPublisher(writer).Publish(context.Background(), event)
}

func TestEventPublisher_WriteErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("kafka error")).Times(1)

	assert.NotPanics(t, func() {
		NewEventPublisher(writer).Publish(context.Background(), models.Event{Type: models.EventReviewCreated, Key: "1"})
	})
}

func TestEventPublisher_NotConfigured(t *testing.T) {
	p := NewEventPublisher(NewKafkaWriter(config.KafkaConfig{}))

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), models.Event{Type: models.EventHousingDeleted, Key: "1"})
	})
	assert.NoError(t, p.Close())

	var nilPublisher *EventPublisher
	assert.NotPanics(t, func() {
		nilPublisher.Publish(context.Background(), models.Event{})
	})
}

func TestEventPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	writer.EXPECT().Close().Return(nil)

	assert.NoError(t, NewEventPublisher(writer).Close())
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "housing-events"})
	require.NotNil(t, w)

	kw, ok := w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "housing-events", kw.Topic)
}
