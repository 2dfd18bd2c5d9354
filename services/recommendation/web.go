package recommendation

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/productcomposite/lib/mycontext"
	"github.com/MarcGrol/productcomposite/lib/myhttp"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/lib/mystore"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
	"github.com/MarcGrol/productcomposite/services/health"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(store mystore.Store[RecommendationEntity], subscriber mypubsub.PubSub, baseURL string) *webService {
	logger := mylog.New("recommendation")

	return &webService{
		logger:  logger,
		service: newService(store, subscriber, baseURL, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/recommendation/health", health.LivenessHandler(s.logger)).Methods("GET")
	router.HandleFunc("/recommendation", s.getRecommendations()).Methods("GET")

	// Called by the event bus
	router.HandleFunc(eventPath, s.handleEventEnvelope()).Methods("POST")

	return s.service.Subscribe(c)
}

func (s *webService) getRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		productID, err := coreapi.ProductIDFromQuery(r)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		recommendations, err := s.service.getRecommendations(c, productID)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		serviceAddress := myhttp.ServiceAddress()
		for i := range recommendations {
			recommendations[i].ServiceAddress = serviceAddress
		}

		responseWriter.Write(c, w, http.StatusOK, recommendations)
	}
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := coreevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
