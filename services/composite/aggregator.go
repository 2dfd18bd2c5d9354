package composite

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypublisher"
	"github.com/MarcGrol/productcomposite/lib/mytime"
	"github.com/MarcGrol/productcomposite/lib/mytrace"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

// fallbackPolicy decides what a failed read turns into: the returned error, or nil to continue with empty data.
type fallbackPolicy func(c context.Context, source string, productID int, err error) error

type aggregator struct {
	products               ProductReader
	recommendations        RecommendationReader
	reviews                ReviewReader
	publisher              mypublisher.Publisher
	nower                  mytime.Nower
	logger                 mylog.Logger
	tracer                 trace.Tracer
	productFallback        fallbackPolicy
	recommendationFallback fallbackPolicy
	reviewFallback         fallbackPolicy
}

func newAggregator(products ProductReader, recommendations RecommendationReader, reviews ReviewReader,
	publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *aggregator {
	a := &aggregator{
		products:        products,
		recommendations: recommendations,
		reviews:         reviews,
		publisher:       publisher,
		nower:           nower,
		logger:          logger,
		tracer:          mytrace.Tracer("composite"),
	}
	a.productFallback = propagateErrors
	a.recommendationFallback = a.degradeToEmpty
	a.reviewFallback = a.degradeToEmpty
	return a
}

func propagateErrors(c context.Context, source string, productID int, err error) error {
	return err
}

// degradeToEmpty cannot tell an unreachable service from a product without entries, so it logs the cause.
func (a *aggregator) degradeToEmpty(c context.Context, source string, productID int, err error) error {
	a.logger.Log(c, fmt.Sprint(productID), mylog.SeverityWarn, "Degrading %s of product %d to empty: %s", source, productID, err)
	return nil
}

func (a *aggregator) GetAggregate(c context.Context, productID int) (coreapi.ProductAggregate, error) {
	err := coreapi.ValidateProductID(productID)
	if err != nil {
		return coreapi.ProductAggregate{}, err
	}

	c, span := a.tracer.Start(c, "GetAggregate", trace.WithAttributes(attribute.Int("productId", productID)))
	defer span.End()

	var (
		product         coreapi.Product
		recommendations = []coreapi.Recommendation{}
		reviews         = []coreapi.Review{}
	)

	// A failing product read must not cancel the sibling reads, so no shared cancellation here.
	var eg errgroup.Group
	eg.Go(func() error {
		p, err := traced(c, a.tracer, "GetProduct", func(c context.Context) (coreapi.Product, error) {
			return a.products.GetProduct(c, productID)
		})
		if err != nil {
			return a.productFallback(c, "product", productID, err)
		}
		product = p
		return nil
	})
	eg.Go(func() error {
		r, err := traced(c, a.tracer, "GetRecommendations", func(c context.Context) ([]coreapi.Recommendation, error) {
			return a.recommendations.GetRecommendations(c, productID)
		})
		if err != nil {
			return a.recommendationFallback(c, "recommendations", productID, err)
		}
		if r != nil {
			recommendations = r
		}
		return nil
	})
	eg.Go(func() error {
		r, err := traced(c, a.tracer, "GetReviews", func(c context.Context) ([]coreapi.Review, error) {
			return a.reviews.GetReviews(c, productID)
		})
		if err != nil {
			return a.reviewFallback(c, "reviews", productID, err)
		}
		if r != nil {
			reviews = r
		}
		return nil
	})
	err = eg.Wait()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return coreapi.ProductAggregate{}, err
	}

	return createAggregate(product, recommendations, reviews), nil
}

func traced[T any](c context.Context, tracer trace.Tracer, name string, read func(c context.Context) (T, error)) (T, error) {
	c, span := tracer.Start(c, name)
	defer span.End()

	result, err := read(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, myerrors.GetKind(err).String())
	}
	return result, err
}

func createAggregate(product coreapi.Product, recommendations []coreapi.Recommendation, reviews []coreapi.Review) coreapi.ProductAggregate {
	aggregate := coreapi.ProductAggregate{
		ProductID:       product.ProductID,
		Name:            product.Name,
		Weight:          product.Weight,
		Recommendations: make([]coreapi.RecommendationSummary, 0, len(recommendations)),
		Reviews:         make([]coreapi.ReviewSummary, 0, len(reviews)),
	}
	for _, r := range recommendations {
		aggregate.Recommendations = append(aggregate.Recommendations, coreapi.RecommendationSummary{
			RecommendationID: r.RecommendationID,
			Author:           r.Author,
			Rate:             r.Rate,
			Content:          r.Content,
		})
	}
	for _, r := range reviews {
		aggregate.Reviews = append(aggregate.Reviews, coreapi.ReviewSummary{
			ReviewID: r.ReviewID,
			Author:   r.Author,
			Subject:  r.Subject,
			Content:  r.Content,
		})
	}
	return aggregate
}

type emission struct {
	topic string
	event coreevents.Event
}

// CreateAggregate returns as soon as the events are handed to the bus; consumers apply them later.
func (a *aggregator) CreateAggregate(c context.Context, body coreapi.ProductAggregate) error {
	err := coreapi.ValidateProductID(body.ProductID)
	if err != nil {
		return err
	}

	now := a.nower.Now()
	productID := body.ProductID
	emissions := []emission{}

	productEvent, err := coreevents.NewCreateEvent(productID, coreevents.ProductData{
		ProductID: productID,
		Name:      body.Name,
		Weight:    body.Weight,
	}, now)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	emissions = append(emissions, emission{topic: coreevents.ProductsTopic, event: productEvent})

	for _, r := range body.Recommendations {
		event, err := coreevents.NewCreateEvent(productID, coreevents.RecommendationData{
			ProductID:        productID,
			RecommendationID: r.RecommendationID,
			Author:           r.Author,
			Rate:             r.Rate,
			Content:          r.Content,
		}, now)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		emissions = append(emissions, emission{topic: coreevents.RecommendationsTopic, event: event})
	}

	for _, r := range body.Reviews {
		event, err := coreevents.NewCreateEvent(productID, coreevents.ReviewData{
			ProductID: productID,
			ReviewID:  r.ReviewID,
			Author:    r.Author,
			Subject:   r.Subject,
			Content:   r.Content,
		}, now)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		emissions = append(emissions, emission{topic: coreevents.ReviewsTopic, event: event})
	}

	err = a.publishAll(c, productID, emissions)
	if err != nil {
		return err
	}

	a.logger.Log(c, fmt.Sprint(productID), mylog.SeverityInfo, "Emitted create events for product %d: %d recommendations, %d reviews",
		productID, len(body.Recommendations), len(body.Reviews))

	return nil
}

func (a *aggregator) DeleteAggregate(c context.Context, productID int) error {
	err := coreapi.ValidateProductID(productID)
	if err != nil {
		return err
	}

	event := coreevents.NewDeleteEvent(productID, a.nower.Now())
	emissions := []emission{}
	for _, topic := range []string{coreevents.ProductsTopic, coreevents.RecommendationsTopic, coreevents.ReviewsTopic} {
		emissions = append(emissions, emission{topic: topic, event: event})
	}

	err = a.publishAll(c, productID, emissions)
	if err != nil {
		return err
	}

	a.logger.Log(c, fmt.Sprint(productID), mylog.SeverityInfo, "Emitted delete events for product %d", productID)

	return nil
}

// publishAll hands every event to the bus, also after a failure, so one failing topic does not
// withhold the events of the others. Events already emitted are not taken back.
func (a *aggregator) publishAll(c context.Context, productID int, emissions []emission) error {
	errs := []error{}
	for _, e := range emissions {
		err := a.publisher.Publish(c, e.topic, e.event)
		if err != nil {
			errs = append(errs, fmt.Errorf("error publishing %s event on %s: %w", e.event.Type, e.topic, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	a.logger.Log(c, fmt.Sprint(productID), mylog.SeverityError, "Emitted %d of %d events for product %d", len(emissions)-len(errs), len(emissions), productID)

	return myerrors.NewUnavailableError(errors.Join(errs...))
}
