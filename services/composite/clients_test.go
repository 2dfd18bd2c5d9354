package composite

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

func TestBackingClient(t *testing.T) {
	ctx := context.TODO()

	t.Run("Get product", func(t *testing.T) {
		server := serve(t, "/product/1", http.StatusOK, `{"productId":1,"name":"name","weight":1,"serviceAddress":"host"}`)

		product, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, coreapi.Product{ProductID: 1, Name: "name", Weight: 1, ServiceAddress: "host"}, product)
	})

	t.Run("Get recommendations", func(t *testing.T) {
		server := serve(t, "/recommendation", http.StatusOK, `[{"productId":1,"recommendationId":1,"author":"a","rate":1,"content":"c"}]`)

		recommendations, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetRecommendations(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, []coreapi.Recommendation{{ProductID: 1, RecommendationID: 1, Author: "a", Rate: 1, Content: "c"}}, recommendations)
	})

	t.Run("Get reviews", func(t *testing.T) {
		server := serve(t, "/review", http.StatusOK, `[]`)

		reviews, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetReviews(ctx, 1)

		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("Not found keeps the downstream message", func(t *testing.T) {
		server := serve(t, "/product/13", http.StatusNotFound, `{"path":"/product/13","message":"No product found for productId: 13","status":404}`)

		_, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, 13)

		assert.True(t, myerrors.IsNotFoundError(err))
		assert.Equal(t, "No product found for productId: 13", myerrors.GetMessage(err))
	})

	t.Run("Unprocessable keeps the downstream message", func(t *testing.T) {
		server := serve(t, "/product/-1", http.StatusUnprocessableEntity, `{"path":"/product/-1","message":"Invalid productId: -1","status":422}`)

		_, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, -1)

		assert.True(t, myerrors.IsInvalidInputError(err))
		assert.Equal(t, 422, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "Invalid productId: -1", myerrors.GetMessage(err))
	})

	t.Run("Unprocessable without structured body falls back to raw text", func(t *testing.T) {
		server := serve(t, "/product/-1", http.StatusUnprocessableEntity, `not json`)

		_, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, -1)

		assert.True(t, myerrors.IsInvalidInputError(err))
		assert.Equal(t, "not json", myerrors.GetMessage(err))
	})

	t.Run("Other status is unexpected", func(t *testing.T) {
		server := serve(t, "/product/1", http.StatusInternalServerError, `{"message":"kaboom","status":500}`)

		_, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, 1)

		assert.Error(t, err)
		assert.Equal(t, myerrors.KindUnexpected, myerrors.GetKind(err))
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("Undecodable body is internal", func(t *testing.T) {
		server := serve(t, "/product/1", http.StatusOK, `{`)

		_, err := NewBackingClient(myhttpclient.New(time.Second), urlsOf(server.URL)).GetProduct(ctx, 1)

		assert.Equal(t, 500, myerrors.GetHTTPStatus(err))
	})

	t.Run("Transport failure is unavailable", func(t *testing.T) {
		// setup
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://product:8080/product/1", nil).Return(0, nil, fmt.Errorf("connection refused"))

		// when
		client := NewBackingClient(sender, urlsOf("http://product:8080/"))
		logger := &recordingLogger{}
		client.logger = logger
		_, err := client.GetProduct(ctx, 1)

		// then
		assert.True(t, myerrors.GetKind(err) == myerrors.KindUnavailable)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		require.Len(t, logger.lines, 1)
		assert.Contains(t, logger.lines[0], "WARN")
		assert.Contains(t, logger.lines[0], "http://product:8080/product/1")
		assert.Contains(t, logger.lines[0], "connection refused")
	})

	t.Run("Query parameter carries the product id", func(t *testing.T) {
		// setup
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://recommendation:8080/recommendation?productId=3", nil).Return(200, []byte(`[]`), nil)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, "http://review:8080/review?productId=3", nil).Return(200, []byte(`[]`), nil)

		// when
		client := NewBackingClient(sender, ServiceURLs{
			Recommendation: "http://recommendation:8080",
			Review:         "http://review:8080",
		})
		_, err1 := client.GetRecommendations(ctx, 3)
		_, err2 := client.GetReviews(ctx, 3)

		// then
		assert.NoError(t, err1)
		assert.NoError(t, err2)
	})
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Log(ctx context.Context, traceLabel string, severity mylog.Severity, format string, a ...any) {
	l.lines = append(l.lines, fmt.Sprintf("%s %s", severity, fmt.Sprintf(format, a...)))
}

func serve(t *testing.T, path string, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func urlsOf(baseURL string) ServiceURLs {
	return ServiceURLs{Product: baseURL, Recommendation: baseURL, Review: baseURL}
}
