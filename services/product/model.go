package product

import (
	"strconv"

	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

type ProductEntity struct {
	UID       string
	ProductID int
	Name      string
	Weight    int
	Version   int
}

func (e ProductEntity) GetUID() string {
	return e.UID
}

func (e ProductEntity) GetVersion() int {
	return e.Version
}

func (e ProductEntity) WithVersion(version int) ProductEntity {
	e.Version = version
	return e
}

func uidOf(productID int) string {
	return strconv.Itoa(productID)
}

func apiToEntity(p coreapi.Product) ProductEntity {
	return ProductEntity{
		UID:       uidOf(p.ProductID),
		ProductID: p.ProductID,
		Name:      p.Name,
		Weight:    p.Weight,
	}
}

// entityToAPI leaves ServiceAddress empty; the web layer fills it in.
func entityToAPI(e ProductEntity) coreapi.Product {
	return coreapi.Product{
		ProductID: e.ProductID,
		Name:      e.Name,
		Weight:    e.Weight,
	}
}

func eventDataToAPI(d coreevents.ProductData) coreapi.Product {
	return coreapi.Product(d)
}
