package recommendation

import (
	"fmt"

	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
)

type RecommendationEntity struct {
	UID              string
	ProductID        int
	RecommendationID int
	Author           string
	Rating           int
	Content          string
	Version          int
}

func (e RecommendationEntity) GetUID() string {
	return e.UID
}

func (e RecommendationEntity) GetVersion() int {
	return e.Version
}

func (e RecommendationEntity) WithVersion(version int) RecommendationEntity {
	e.Version = version
	return e
}

// uidOf makes (productId, recommendationId) unique.
func uidOf(productID int, recommendationID int) string {
	return fmt.Sprintf("%d-%d", productID, recommendationID)
}

func apiToEntity(r coreapi.Recommendation) RecommendationEntity {
	return RecommendationEntity{
		UID:              uidOf(r.ProductID, r.RecommendationID),
		ProductID:        r.ProductID,
		RecommendationID: r.RecommendationID,
		Author:           r.Author,
		Rating:           r.Rate,
		Content:          r.Content,
	}
}

func entityToAPI(e RecommendationEntity) coreapi.Recommendation {
	return coreapi.Recommendation{
		ProductID:        e.ProductID,
		RecommendationID: e.RecommendationID,
		Author:           e.Author,
		Rate:             e.Rating,
		Content:          e.Content,
	}
}

func entitiesToAPI(entities []RecommendationEntity) []coreapi.Recommendation {
	result := make([]coreapi.Recommendation, 0, len(entities))
	for _, e := range entities {
		result = append(result, entityToAPI(e))
	}
	return result
}

func eventDataToAPI(d coreevents.RecommendationData) coreapi.Recommendation {
	return coreapi.Recommendation(d)
}
