package health

import (
	"net/http"

	"github.com/MarcGrol/productcomposite/lib/mycontext"
	"github.com/MarcGrol/productcomposite/lib/myhttp"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

func LivenessHandler(logger mylog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		myhttp.NewWriter(logger).Write(c, w, http.StatusOK, coreapi.Health{Status: coreapi.HealthUp})
	}
}
