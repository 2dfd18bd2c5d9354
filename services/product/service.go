package product

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
	productStore *mystore.VersionedStore[ProductEntity]
	subscriber   mypubsub.PubSub
	baseURL      string
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(store mystore.Store[ProductEntity], subscriber mypubsub.PubSub, baseURL string, logger mylog.Logger) *service {
	return &service{
		productStore: mystore.NewVersionedStore[ProductEntity](store),
		subscriber:   subscriber,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (s *service) getProduct(c context.Context, productID int) (coreapi.Product, error) {
	err := coreapi.ValidateProductID(productID)
	if err != nil {
		return coreapi.Product{}, err
	}

	entity, found, err := s.productStore.Get(c, uidOf(productID))
	if err != nil {
		return coreapi.Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return coreapi.Product{}, myerrors.NewNotFoundErrorf("No product found for productId: %d", productID)
	}

	return entityToAPI(entity), nil
}

func (s *service) createProduct(c context.Context, p coreapi.Product) (coreapi.Product, error) {
	created, err := s.productStore.Create(c, apiToEntity(p))
	if err != nil {
		if errors.Is(err, mystore.ErrDuplicateKey) {
			return coreapi.Product{}, myerrors.NewDuplicateKeyErrorf("Duplicate key, Product Id: %d", p.ProductID)
		}
		return coreapi.Product{}, myerrors.NewInternalError(err)
	}

	return entityToAPI(created), nil
}

// updateProduct stores p when its version matches the stored one.
func (s *service) updateProduct(c context.Context, p ProductEntity) (ProductEntity, error) {
	updated, err := s.productStore.Update(c, p)
	if err != nil {
		if errors.Is(err, mystore.ErrOptimisticLock) {
			return ProductEntity{}, myerrors.NewOptimisticLockError(err)
		}
		if errors.Is(err, mystore.ErrNotFound) {
			return ProductEntity{}, myerrors.NewNotFoundErrorf("No product found for productId: %d", p.ProductID)
		}
		return ProductEntity{}, myerrors.NewInternalError(err)
	}

	return updated, nil
}

// deleteProduct succeeds when the product is already gone.
func (s *service) deleteProduct(c context.Context, productID int) error {
	_, err := s.productStore.DeleteWhere(c, []mystore.Filter{{Field: "ProductID", Compare: "=", Value: productID}})
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}
