package recommendation

import (
	"context"
	"fmt"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

const eventPath = "/api/recommendation/event"

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, coreevents.RecommendationsTopic, s.baseURL+eventPath)
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", coreevents.RecommendationsTopic, err)
	}

	return nil
}

func (s *service) OnCreate(c context.Context, topic string, event coreevents.Event) error {
	data, ok := event.Data.(coreevents.RecommendationData)
	if !ok {
		return myerrors.NewBadRequestErrorf("expected recommendation data on topic %s, got %T", topic, event.Data)
	}
	if data.ProductID != event.Key {
		return myerrors.NewBadRequestErrorf("event key %d does not match recommendation data of product %d", event.Key, data.ProductID)
	}

	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Create recommendation %d/%d", data.ProductID, data.RecommendationID)

	_, err := s.createRecommendation(c, eventDataToAPI(data))
	return err
}

func (s *service) OnDelete(c context.Context, topic string, event coreevents.Event) error {
	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Delete recommendations of product %d", event.Key)

	return s.deleteRecommendations(c, event.Key)
}
