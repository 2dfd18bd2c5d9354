package recommendation

import (
	"context"
	"errors"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/lib/mystore"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

type service struct {
	recommendationStore *mystore.VersionedStore[RecommendationEntity]
	subscriber          mypubsub.PubSub
	baseURL             string
	logger              mylog.Logger
}

func newService(store mystore.Store[RecommendationEntity], subscriber mypubsub.PubSub, baseURL string, logger mylog.Logger) *service {
	return &service{
		recommendationStore: mystore.NewVersionedStore[RecommendationEntity](store),
		subscriber:          subscriber,
		baseURL:             baseURL,
		logger:              logger,
	}
}

func byProduct(productID int) []mystore.Filter {
	return []mystore.Filter{{Field: "ProductID", Compare: "=", Value: productID}}
}

// getRecommendations returns an empty list for unknown products.
func (s *service) getRecommendations(c context.Context, productID int) ([]coreapi.Recommendation, error) {
	err := coreapi.ValidateProductID(productID)
	if err != nil {
		return nil, err
	}

	entities, err := s.recommendationStore.Query(c, byProduct(productID), "RecommendationID")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, "", mylog.SeverityDebug, "Found %d recommendations for product %d", len(entities), productID)

	return entitiesToAPI(entities), nil
}

func (s *service) createRecommendation(c context.Context, r coreapi.Recommendation) (coreapi.Recommendation, error) {
	created, err := s.recommendationStore.Create(c, apiToEntity(r))
	if err != nil {
		if errors.Is(err, mystore.ErrDuplicateKey) {
			return coreapi.Recommendation{}, myerrors.NewDuplicateKeyErrorf("Duplicate key, Product Id: %d, Recommendation Id:%d", r.ProductID, r.RecommendationID)
		}
		return coreapi.Recommendation{}, myerrors.NewInternalError(err)
	}

	return entityToAPI(created), nil
}

func (s *service) updateRecommendation(c context.Context, r RecommendationEntity) (RecommendationEntity, error) {
	updated, err := s.recommendationStore.Update(c, r)
	if err != nil {
		if errors.Is(err, mystore.ErrOptimisticLock) {
			return RecommendationEntity{}, myerrors.NewOptimisticLockError(err)
		}
		if errors.Is(err, mystore.ErrNotFound) {
			return RecommendationEntity{}, myerrors.NewNotFoundErrorf("No recommendation found for productId: %d, recommendationId: %d", r.ProductID, r.RecommendationID)
		}
		return RecommendationEntity{}, myerrors.NewInternalError(err)
	}

	return updated, nil
}

func (s *service) deleteRecommendations(c context.Context, productID int) error {
	deleted, err := s.recommendationStore.DeleteWhere(c, byProduct(productID))
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	s.logger.Log(c, "", mylog.SeverityDebug, "Deleted %d recommendations of product %d", deleted, productID)

	return nil
}
