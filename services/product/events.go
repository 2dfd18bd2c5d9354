package product

import (
	"context"
	"fmt"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

const eventPath = "/api/product/event"

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, coreevents.ProductsTopic, s.baseURL+eventPath)
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", coreevents.ProductsTopic, err)
	}

	return nil
}

func (s *service) OnCreate(c context.Context, topic string, event coreevents.Event) error {
	data, ok := event.Data.(coreevents.ProductData)
	if !ok {
		return myerrors.NewBadRequestErrorf("expected product data on topic %s, got %T", topic, event.Data)
	}
	if data.ProductID != event.Key {
		return myerrors.NewBadRequestErrorf("event key %d does not match product data of product %d", event.Key, data.ProductID)
	}

	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Create product with id %d", data.ProductID)

	_, err := s.createProduct(c, eventDataToAPI(data))
	return err
}

func (s *service) OnDelete(c context.Context, topic string, event coreevents.Event) error {
	s.logger.Log(c, event.GetAggregateName(), mylog.SeverityInfo, "Delete product with id %d", event.Key)

	return s.deleteProduct(c, event.Key)
}
