package mycontext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextFromHTTPRequest(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")

	t.Run("trace header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/aggregate/1", nil)
		r.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")

		c := ContextFromHTTPRequest(r)
		assert.Equal(t, "projects/my-project/traces/105445aa7843bc8bf206b12000100000", TraceFromContext(c))
	})

	t.Run("no trace header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/aggregate/1", nil)
		assert.Equal(t, "", TraceFromContext(ContextFromHTTPRequest(r)))
		assert.Equal(t, "", TraceFromContext(context.Background()))
	})

	t.Run("cancellation propagates", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		r := httptest.NewRequest(http.MethodGet, "/aggregate/1", nil).WithContext(parent)

		c := ContextFromHTTPRequest(r)
		cancel()
		<-c.Done()
		assert.ErrorIs(t, c.Err(), context.Canceled)
	})
}
