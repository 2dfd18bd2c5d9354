package review

import (
	"context"
	"errors"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/lib/mystore"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/review/reviewstore"
)

type service struct {
	reviewStore reviewstore.Store
	subscriber  mypubsub.PubSub
	baseURL     string
	logger      mylog.Logger
}

func newService(store reviewstore.Store, subscriber mypubsub.PubSub, baseURL string, logger mylog.Logger) *service {
	return &service{
		reviewStore: store,
		subscriber:  subscriber,
		baseURL:     baseURL,
		logger:      logger,
	}
}

func (s *service) getReviews(c context.Context, productID int) ([]coreapi.Review, error) {
	err := coreapi.ValidateProductID(productID)
	if err != nil {
		return nil, err
	}

	entities, err := s.reviewStore.FindByProductID(c, productID)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return entitiesToAPI(entities), nil
}

func (s *service) createReview(c context.Context, r coreapi.Review) (coreapi.Review, error) {
	created, err := s.reviewStore.Create(c, apiToEntity(r))
	if err != nil {
		if errors.Is(err, mystore.ErrDuplicateKey) {
			return coreapi.Review{}, myerrors.NewDuplicateKeyErrorf("Duplicate key, Product Id: %d, Review Id:%d", r.ProductID, r.ReviewID)
		}
		return coreapi.Review{}, myerrors.NewInternalError(err)
	}

	return entityToAPI(created), nil
}

func (s *service) updateReview(c context.Context, r reviewstore.ReviewEntity) (reviewstore.ReviewEntity, error) {
	updated, err := s.reviewStore.Update(c, r)
	if err != nil {
		if errors.Is(err, mystore.ErrOptimisticLock) {
			return reviewstore.ReviewEntity{}, myerrors.NewOptimisticLockError(err)
		}
		if errors.Is(err, mystore.ErrNotFound) {
			return reviewstore.ReviewEntity{}, myerrors.NewNotFoundErrorf("No review found for productId: %d, reviewId: %d", r.ProductID, r.ReviewID)
		}
		return reviewstore.ReviewEntity{}, myerrors.NewInternalError(err)
	}

	return updated, nil
}

func (s *service) deleteReviews(c context.Context, productID int) error {
	deleted, err := s.reviewStore.DeleteByProductID(c, productID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	s.logger.Log(c, "", mylog.SeverityDebug, "Deleted %d reviews of product %d", deleted, productID)

	return nil
}
