package coreapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
)

var aggregate = ProductAggregate{
	ProductID: 1,
	Name:      "name",
	Weight:    1,
	Recommendations: []RecommendationSummary{
		{RecommendationID: 1, Author: "a", Rate: 1, Content: "c"},
		{RecommendationID: 2, Author: "b", Rate: 5, Content: "d"},
	},
	Reviews: []ReviewSummary{
		{ReviewID: 1, Author: "a", Subject: "s", Content: "c"},
	},
}

func TestEncodeDecodeSame(t *testing.T) {
	values, err := aggregate.ToForm()
	assert.NoError(t, err)
	again, err := NewAggregateFromValues(values)
	assert.NoError(t, err)

	assert.Equal(t, aggregate, again)
}

func TestDecodeForm(t *testing.T) {
	form := url.Values{
		"productId":                           []string{"1"},
		"name":                                []string{"name"},
		"weight":                              []string{"1"},
		"recommendations[0].recommendationId": []string{"1"},
		"recommendations[0].author":           []string{"a"},
		"recommendations[0].rate":             []string{"1"},
		"recommendations[0].content":          []string{"c"},
		"recommendations[1].recommendationId": []string{"2"},
		"recommendations[1].author":           []string{"b"},
		"recommendations[1].rate":             []string{"5"},
		"recommendations[1].content":          []string{"d"},
		"reviews[0].reviewId":                 []string{"1"},
		"reviews[0].author":                   []string{"a"},
		"reviews[0].subject":                  []string{"s"},
		"reviews[0].content":                  []string{"c"},
	}

	t.Run("Values", func(t *testing.T) {
		got, err := NewAggregateFromValues(form)
		assert.NoError(t, err)
		assert.Equal(t, aggregate, got)
	})

	t.Run("Request", func(t *testing.T) {
		request, _ := http.NewRequest(http.MethodPost, "/aggregate", strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := NewAggregateFromRequest(request)
		assert.NoError(t, err)
		assert.Equal(t, aggregate, got)
	})

	t.Run("Not a number", func(t *testing.T) {
		_, err := NewAggregateFromValues(url.Values{"productId": []string{"one"}})
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		request, _ := http.NewRequest(http.MethodPost, "/aggregate", strings.NewReader(
			`{"productId":1,"name":"name","weight":1,"recommendations":[],"reviews":[]}`))
		request.Header.Set("Content-Type", "application/json")

		got, err := NewAggregateFromRequest(request)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ProductID)
		assert.Empty(t, got.Recommendations)
	})

	t.Run("Malformed", func(t *testing.T) {
		request, _ := http.NewRequest(http.MethodPost, "/aggregate", strings.NewReader(`{"productId":`))

		_, err := NewAggregateFromRequest(request)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})
}
