package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/productcomposite/lib/mystore"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

func TestMapper(t *testing.T) {
	api := coreapi.Product{ProductID: 1, Name: "n", Weight: 1, ServiceAddress: "sa"}

	entity := apiToEntity(api)
	assert.Equal(t, "1", entity.UID)
	assert.Equal(t, api.ProductID, entity.ProductID)
	assert.Equal(t, api.Name, entity.Name)
	assert.Equal(t, api.Weight, entity.Weight)

	api2 := entityToAPI(entity)
	assert.Equal(t, api.ProductID, api2.ProductID)
	assert.Equal(t, api.Name, api2.Name)
	assert.Equal(t, api.Weight, api2.Weight)
	assert.Empty(t, api2.ServiceAddress)
}

func TestOptimisticLocking(t *testing.T) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[ProductEntity](c)
	sut := mystore.NewVersionedStore[ProductEntity](storer)

	_, err := sut.Create(c, apiToEntity(coreapi.Product{ProductID: 1, Name: "n", Weight: 1}))
	require.NoError(t, err)

	entity1, _, _ := sut.Get(c, "1")
	entity2, _, _ := sut.Get(c, "1")

	entity1.Name = "n1"
	saved, err := sut.Update(c, entity1)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Version)

	entity2.Name = "n2"
	_, err = sut.Update(c, entity2)
	assert.ErrorIs(t, err, mystore.ErrOptimisticLock)

	stored, _, _ := sut.Get(c, "1")
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, "n1", stored.Name)
}
