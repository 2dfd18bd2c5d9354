package coreevents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mytime"
)

type recordingService struct {
	created []Event
	deleted []Event
	topics  []string
}

func (s *recordingService) Subscribe(c context.Context) error {
	return nil
}

func (s *recordingService) OnCreate(c context.Context, topic string, event Event) error {
	s.topics = append(s.topics, topic)
	s.created = append(s.created, event)
	return nil
}

func (s *recordingService) OnDelete(c context.Context, topic string, event Event) error {
	s.topics = append(s.topics, topic)
	s.deleted = append(s.deleted, event)
	return nil
}

func TestDispatchEvent(t *testing.T) {
	c := context.TODO()

	t.Run("Create", func(t *testing.T) {
		sut := &recordingService{}
		event, _ := NewCreateEvent(1, ReviewData{ProductID: 1, ReviewID: 1}, mytime.ExampleTime)

		err := DispatchEvent(c, strings.NewReader(CreatePushMessage(ReviewsTopic, event)), sut)

		assert.NoError(t, err)
		assert.Equal(t, []string{ReviewsTopic}, sut.topics)
		assert.Len(t, sut.created, 1)
		assert.Equal(t, mytime.ExampleTime, sut.created[0].EventCreatedAt)
		assert.True(t, event.IsSameEvent(sut.created[0]))
	})

	t.Run("Delete", func(t *testing.T) {
		sut := &recordingService{}

		err := DispatchEvent(c, strings.NewReader(CreatePushMessage(ProductsTopic, NewDeleteEvent(1, mytime.ExampleTime))), sut)

		assert.NoError(t, err)
		assert.Len(t, sut.deleted, 1)
		assert.Equal(t, 1, sut.deleted[0].Key)
	})

	t.Run("Garbage", func(t *testing.T) {
		err := DispatchEvent(c, strings.NewReader("garbage"), &recordingService{})
		assert.True(t, myerrors.IsInvalidInputError(err))
	})

	t.Run("Unknown type", func(t *testing.T) {
		err := DispatchEvent(c, strings.NewReader(CreatePushMessage(ProductsTopic, Event{Type: "UPDATE", Key: 1})), &recordingService{})
		assert.Equal(t, 501, myerrors.GetHTTPStatus(err))
	})
}
