package review

import (
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
	"github.com/MarcGrol/productcomposite/services/review/reviewstore"
)

func apiToEntity(r coreapi.Review) reviewstore.ReviewEntity {
	return reviewstore.ReviewEntity{
		ProductID: r.ProductID,
		ReviewID:  r.ReviewID,
		Author:    r.Author,
		Subject:   r.Subject,
		Content:   r.Content,
	}
}

func entityToAPI(e reviewstore.ReviewEntity) coreapi.Review {
	return coreapi.Review{
		ProductID: e.ProductID,
		ReviewID:  e.ReviewID,
		Author:    e.Author,
		Subject:   e.Subject,
		Content:   e.Content,
	}
}

func entitiesToAPI(entities []reviewstore.ReviewEntity) []coreapi.Review {
	result := make([]coreapi.Review, 0, len(entities))
	for _, e := range entities {
		result = append(result, entityToAPI(e))
	}
	return result
}

func eventDataToAPI(d coreevents.ReviewData) coreapi.Review {
	return coreapi.Review(d)
}
