package composite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/myevents"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypublisher"
	"github.com/MarcGrol/productcomposite/lib/mytime"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

type published struct {
	topic string
	event coreevents.Event
}

func TestFallbackPolicies(t *testing.T) {
	ctx := context.TODO()
	sut := newAggregator(nil, nil, nil, nil, mytime.RealNower{}, mylog.New("test"))
	cause := myerrors.NewNotFoundErrorf("gone")

	assert.Equal(t, cause, sut.productFallback(ctx, "product", 1, cause))
	assert.NoError(t, sut.recommendationFallback(ctx, "recommendations", 1, cause))
	assert.NoError(t, sut.reviewFallback(ctx, "reviews", 1, cause))
}

func TestGetAggregate(t *testing.T) {

	t.Run("All reads succeed", func(t *testing.T) {
		// setup
		ctx, sut, products, recommendations, reviews, _ := setupAggregator(t)

		// given
		products.EXPECT().GetProduct(gomock.Any(), 1).Return(coreapi.Product{ProductID: 1, Name: "name", Weight: 1, ServiceAddress: "host"}, nil)
		recommendations.EXPECT().GetRecommendations(gomock.Any(), 1).Return([]coreapi.Recommendation{
			{ProductID: 1, RecommendationID: 1, Author: "a", Rate: 1, Content: "c", ServiceAddress: "host"},
		}, nil)
		reviews.EXPECT().GetReviews(gomock.Any(), 1).Return([]coreapi.Review{
			{ProductID: 1, ReviewID: 1, Author: "a", Subject: "s", Content: "c", ServiceAddress: "host"},
		}, nil)

		// when
		aggregate, err := sut.GetAggregate(ctx, 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, coreapi.ProductAggregate{
			ProductID:       1,
			Name:            "name",
			Weight:          1,
			Recommendations: []coreapi.RecommendationSummary{{RecommendationID: 1, Author: "a", Rate: 1, Content: "c"}},
			Reviews:         []coreapi.ReviewSummary{{ReviewID: 1, Author: "a", Subject: "s", Content: "c"}},
		}, aggregate)
	})

	t.Run("Failing lists degrade to empty", func(t *testing.T) {
		// setup
		ctx, sut, products, recommendations, reviews, _ := setupAggregator(t)

		// given
		products.EXPECT().GetProduct(gomock.Any(), 1).Return(coreapi.Product{ProductID: 1, Name: "name", Weight: 1}, nil)
		recommendations.EXPECT().GetRecommendations(gomock.Any(), 1).Return(nil, myerrors.NewUnavailableError(fmt.Errorf("connection refused")))
		reviews.EXPECT().GetReviews(gomock.Any(), 1).Return(nil, myerrors.NewInvalidInputErrorf("Invalid productId: 1"))

		// when
		aggregate, err := sut.GetAggregate(ctx, 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, aggregate.ProductID)
		assert.NotNil(t, aggregate.Recommendations)
		assert.Empty(t, aggregate.Recommendations)
		assert.NotNil(t, aggregate.Reviews)
		assert.Empty(t, aggregate.Reviews)
	})

	t.Run("Product not found propagates", func(t *testing.T) {
		// setup
		ctx, sut, products, recommendations, reviews, _ := setupAggregator(t)

		// given
		products.EXPECT().GetProduct(gomock.Any(), 13).Return(coreapi.Product{}, myerrors.NewNotFoundErrorf("No product found for productId: 13"))
		recommendations.EXPECT().GetRecommendations(gomock.Any(), 13).Return([]coreapi.Recommendation{}, nil)
		reviews.EXPECT().GetReviews(gomock.Any(), 13).Return([]coreapi.Review{}, nil)

		// when
		_, err := sut.GetAggregate(ctx, 13)

		// then
		assert.True(t, myerrors.IsNotFoundError(err))
		assert.Equal(t, "No product found for productId: 13", myerrors.GetMessage(err))
	})

	t.Run("Product failure does not cancel sibling reads", func(t *testing.T) {
		// setup
		ctx, sut, products, recommendations, reviews, _ := setupAggregator(t)

		// given
		productFailed := make(chan struct{})
		products.EXPECT().GetProduct(gomock.Any(), 1).DoAndReturn(func(c context.Context, productID int) (coreapi.Product, error) {
			defer close(productFailed)
			return coreapi.Product{}, fmt.Errorf("boom")
		})
		recommendations.EXPECT().GetRecommendations(gomock.Any(), 1).DoAndReturn(func(c context.Context, productID int) ([]coreapi.Recommendation, error) {
			<-productFailed
			return nil, c.Err()
		})
		reviews.EXPECT().GetReviews(gomock.Any(), 1).DoAndReturn(func(c context.Context, productID int) ([]coreapi.Review, error) {
			<-productFailed
			assert.NoError(t, c.Err())
			return nil, nil
		})

		// when
		_, err := sut.GetAggregate(ctx, 1)

		// then
		assert.EqualError(t, err, "boom")
	})

	t.Run("Invalid id is rejected before any read", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, _ := setupAggregator(t)

		// when
		_, err := sut.GetAggregate(ctx, -1)

		// then
		assert.True(t, myerrors.IsInvalidInputError(err))
		assert.Equal(t, 422, myerrors.GetHTTPStatus(err))
	})
}

func TestCreateAggregate(t *testing.T) {

	t.Run("Emits one create per entity", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, publisher := setupAggregator(t)
		events := recordPublished(publisher)

		// when
		err := sut.CreateAggregate(ctx, coreapi.ProductAggregate{
			ProductID:       1,
			Name:            "name",
			Weight:          1,
			Recommendations: []coreapi.RecommendationSummary{{RecommendationID: 1, Author: "a", Rate: 1, Content: "c"}},
			Reviews:         []coreapi.ReviewSummary{{ReviewID: 1, Author: "a", Subject: "s", Content: "c"}},
		})

		// then
		require.NoError(t, err)
		require.Len(t, *events, 3)

		assert.Equal(t, coreevents.ProductsTopic, (*events)[0].topic)
		expected, _ := coreevents.NewCreateEvent(1, coreevents.ProductData{ProductID: 1, Name: "name", Weight: 1}, mytime.ExampleTime)
		assert.True(t, expected.IsSameEvent((*events)[0].event))

		assert.Equal(t, coreevents.RecommendationsTopic, (*events)[1].topic)
		expected, _ = coreevents.NewCreateEvent(1, coreevents.RecommendationData{ProductID: 1, RecommendationID: 1, Author: "a", Rate: 1, Content: "c"}, mytime.ExampleTime)
		assert.True(t, expected.IsSameEvent((*events)[1].event))

		assert.Equal(t, coreevents.ReviewsTopic, (*events)[2].topic)
		expected, _ = coreevents.NewCreateEvent(1, coreevents.ReviewData{ProductID: 1, ReviewID: 1, Author: "a", Subject: "s", Content: "c"}, mytime.ExampleTime)
		assert.True(t, expected.IsSameEvent((*events)[2].event))

		for _, p := range *events {
			assert.Equal(t, mytime.ExampleTime, p.event.EventCreatedAt)
		}
	})

	t.Run("Product without children emits a single create", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, publisher := setupAggregator(t)
		events := recordPublished(publisher)

		// when
		err := sut.CreateAggregate(ctx, coreapi.ProductAggregate{ProductID: 2, Name: "name", Weight: 2})

		// then
		require.NoError(t, err)
		require.Len(t, *events, 1)
		assert.Equal(t, coreevents.ProductsTopic, (*events)[0].topic)
	})

	t.Run("Invalid id emits nothing", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, _ := setupAggregator(t)

		// when
		err := sut.CreateAggregate(ctx, coreapi.ProductAggregate{ProductID: -1})

		// then
		assert.True(t, myerrors.IsInvalidInputError(err))
	})

	t.Run("Bus failure still emits the remaining events", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, publisher := setupAggregator(t)
		topics := []string{}
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, topic string, event myevents.Event) error {
			topics = append(topics, topic)
			if topic == coreevents.ProductsTopic {
				return fmt.Errorf("bus down")
			}
			return nil
		}).Times(3)

		// when
		err := sut.CreateAggregate(ctx, coreapi.ProductAggregate{
			ProductID:       1,
			Recommendations: []coreapi.RecommendationSummary{{RecommendationID: 1}},
			Reviews:         []coreapi.ReviewSummary{{ReviewID: 1}},
		})

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		assert.Contains(t, err.Error(), "bus down")
		assert.Equal(t, []string{coreevents.ProductsTopic, coreevents.RecommendationsTopic, coreevents.ReviewsTopic}, topics)
	})
}

func TestDeleteAggregate(t *testing.T) {

	t.Run("Emits one delete per stream", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, publisher := setupAggregator(t)
		events := recordPublished(publisher)

		// when
		err := sut.DeleteAggregate(ctx, 1)

		// then
		require.NoError(t, err)
		require.Len(t, *events, 3)
		topics := []string{}
		for _, p := range *events {
			topics = append(topics, p.topic)
			assert.True(t, coreevents.NewDeleteEvent(1, mytime.ExampleTime).IsSameEvent(p.event))
		}
		assert.ElementsMatch(t, []string{coreevents.ProductsTopic, coreevents.RecommendationsTopic, coreevents.ReviewsTopic}, topics)
	})

	t.Run("Failing stream does not withhold the other deletes", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, publisher := setupAggregator(t)
		publisher.EXPECT().Publish(gomock.Any(), coreevents.RecommendationsTopic, gomock.Any()).Return(fmt.Errorf("bus down"))
		publisher.EXPECT().Publish(gomock.Any(), coreevents.ProductsTopic, gomock.Any()).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), coreevents.ReviewsTopic, gomock.Any()).Return(nil)

		// when
		err := sut.DeleteAggregate(ctx, 1)

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Invalid id emits nothing", func(t *testing.T) {
		// setup
		ctx, sut, _, _, _, _ := setupAggregator(t)

		// when
		err := sut.DeleteAggregate(ctx, 0)

		// then
		assert.True(t, myerrors.IsInvalidInputError(err))
	})
}

func recordPublished(publisher *mypublisher.MockPublisher) *[]published {
	events := []published{}
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, topic string, event myevents.Event) error {
		events = append(events, published{topic: topic, event: event.(coreevents.Event)})
		return nil
	}).AnyTimes()
	return &events
}

func setupAggregator(t *testing.T) (context.Context, *aggregator, *MockProductReader, *MockRecommendationReader, *MockReviewReader, *mypublisher.MockPublisher) {
	ctrl := gomock.NewController(t)

	products := NewMockProductReader(ctrl)
	recommendations := NewMockRecommendationReader(ctrl)
	reviews := NewMockReviewReader(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := newAggregator(products, recommendations, reviews, publisher, nower, mylog.New("composite"))

	return context.TODO(), sut, products, recommendations, reviews, publisher
}
