package coreapi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
)

type ProductAggregate struct {
	ProductID       int                     `json:"productId" form:"productId"`
	Name            string                  `json:"name" form:"name"`
	Weight          int                     `json:"weight" form:"weight"`
	Recommendations []RecommendationSummary `json:"recommendations" form:"recommendations"`
	Reviews         []ReviewSummary         `json:"reviews" form:"reviews"`
}

type RecommendationSummary struct {
	RecommendationID int    `json:"recommendationId" form:"recommendationId"`
	Author           string `json:"author" form:"author"`
	Rate             int    `json:"rate" form:"rate"`
	Content          string `json:"content" form:"content"`
}

type ReviewSummary struct {
	ReviewID int    `json:"reviewId" form:"reviewId"`
	Author   string `json:"author" form:"author"`
	Subject  string `json:"subject" form:"subject"`
	Content  string `json:"content" form:"content"`
}

// NewAggregateFromRequest accepts both a JSON body and a form-encoded submission.
func NewAggregateFromRequest(r *http.Request) (ProductAggregate, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		err := r.ParseForm()
		if err != nil {
			return ProductAggregate{}, myerrors.NewBadRequestError(err)
		}
		return NewAggregateFromValues(r.PostForm)
	}

	aggregate := ProductAggregate{}
	err := json.NewDecoder(r.Body).Decode(&aggregate)
	if err != nil {
		return ProductAggregate{}, myerrors.NewBadRequestErrorf("error decoding aggregate: %s", err)
	}
	return aggregate, nil
}

func NewAggregateFromValues(values url.Values) (ProductAggregate, error) {
	aggregate := ProductAggregate{}
	err := formcodec.NewDecoder().Decode(&aggregate, values)
	if err != nil {
		return aggregate, myerrors.NewBadRequestErrorf("error decoding form: %s", err)
	}

	return aggregate, nil
}

func (a ProductAggregate) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(a)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %w", err)
	}

	return values, nil
}
