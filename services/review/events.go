package review

import (
	"context"
	"fmt"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

const eventPath = "/api/review/event"

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, coreevents.ReviewsTopic, s.baseURL+eventPath)
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", coreevents.ReviewsTopic, err)
	}

	return nil
}

func (s *service) OnCreate(c context.Context, topic string, event coreevents.Event) error {
	data, ok := event.Data.(coreevents.ReviewData)
	if !ok {
		return myerrors.NewBadRequestErrorf("expected review data on topic %s, got %T", topic, event.Data)
	}
	if data.ProductID != event.Key {
		return myerrors.NewBadRequestErrorf("event key %d does not match review data of product %d", event.Key, data.ProductID)
	}

	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Create review %d/%d", data.ProductID, data.ReviewID)

	_, err := s.createReview(c, eventDataToAPI(data))
	return err
}

func (s *service) OnDelete(c context.Context, topic string, event coreevents.Event) error {
	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Delete reviews of product %d", event.Key)

	return s.deleteReviews(c, event.Key)
}
