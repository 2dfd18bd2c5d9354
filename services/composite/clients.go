package composite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/myhttp"
	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

//go:generate mockgen -source=clients.go -package composite -destination clients_mock.go ProductReader,RecommendationReader,ReviewReader
type ProductReader interface {
	GetProduct(c context.Context, productID int) (coreapi.Product, error)
}

type RecommendationReader interface {
	GetRecommendations(c context.Context, productID int) ([]coreapi.Recommendation, error)
}

type ReviewReader interface {
	GetReviews(c context.Context, productID int) ([]coreapi.Review, error)
}

type ServiceURLs struct {
	Product        string
	Recommendation string
	Review         string
}

// backingClient reads from the product, recommendation and review services over HTTP
// and maps their error responses onto myerrors kinds.
type backingClient struct {
	sender myhttpclient.HTTPSender
	urls   ServiceURLs
	logger mylog.Logger
}

func NewBackingClient(sender myhttpclient.HTTPSender, urls ServiceURLs) *backingClient {
	return &backingClient{
		sender: sender,
		urls: ServiceURLs{
			Product:        strings.TrimSuffix(urls.Product, "/"),
			Recommendation: strings.TrimSuffix(urls.Recommendation, "/"),
			Review:         strings.TrimSuffix(urls.Review, "/"),
		},
		logger: mylog.New("composite-integration"),
	}
}

func (bc *backingClient) GetProduct(c context.Context, productID int) (coreapi.Product, error) {
	product := coreapi.Product{}
	err := bc.get(c, fmt.Sprintf("%s/product/%d", bc.urls.Product, productID), &product)
	if err != nil {
		return coreapi.Product{}, err
	}
	return product, nil
}

func (bc *backingClient) GetRecommendations(c context.Context, productID int) ([]coreapi.Recommendation, error) {
	recommendations := []coreapi.Recommendation{}
	err := bc.get(c, fmt.Sprintf("%s/recommendation?productId=%d", bc.urls.Recommendation, productID), &recommendations)
	if err != nil {
		return nil, err
	}
	return recommendations, nil
}

func (bc *backingClient) GetReviews(c context.Context, productID int) ([]coreapi.Review, error) {
	reviews := []coreapi.Review{}
	err := bc.get(c, fmt.Sprintf("%s/review?productId=%d", bc.urls.Review, productID), &reviews)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (bc *backingClient) get(c context.Context, url string, target any) error {
	status, body, err := bc.sender.Send(c, http.MethodGet, url, nil)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		bc.logger.Log(c, "", mylog.SeverityWarn, "Error reaching %s, will rethrow it as unavailable: %s", url, err)
		return myerrors.NewUnavailableError(err)
	}

	switch {
	case status >= 200 && status <= 299:
		err = json.Unmarshal(body, target)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error decoding response of %s: %w", url, err))
		}
		return nil
	case status == http.StatusNotFound:
		return myerrors.NewNotFoundError(errors.New(errorMessage(status, body)))
	case status == http.StatusUnprocessableEntity:
		return myerrors.NewInvalidInputError(errors.New(errorMessage(status, body)))
	default:
		bc.logger.Log(c, "", mylog.SeverityWarn, "Got an unexpected HTTP error: %d from %s, will rethrow it: %s", status, url, string(body))
		return fmt.Errorf("unexpected status %d from %s: %s", status, url, errorMessage(status, body))
	}
}

// errorMessage prefers the message of a structured error body and falls back to the raw body.
func errorMessage(status int, body []byte) string {
	info := myhttp.ErrorInfo{}
	err := json.Unmarshal(body, &info)
	if err == nil && info.Message != "" {
		return info.Message
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
