package review

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/productcomposite/lib/mycontext"
	"github.com/MarcGrol/productcomposite/lib/myhttp"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
	"github.com/MarcGrol/productcomposite/services/health"
	"github.com/MarcGrol/productcomposite/services/review/reviewstore"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

func NewWebService(store reviewstore.Store, subscriber mypubsub.PubSub, baseURL string) *webService {
	logger := mylog.New("review")

	return &webService{
		logger:  logger,
		service: newService(store, subscriber, baseURL, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/review/health", health.LivenessHandler(s.logger)).Methods("GET")
	router.HandleFunc("/review", s.getReviews()).Methods("GET")

	// Called by the event bus
	router.HandleFunc(eventPath, s.handleEventEnvelope()).Methods("POST")

	return s.service.Subscribe(c)
}

func (s *webService) getReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		productID, err := coreapi.ProductIDFromQuery(r)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		reviews, err := s.service.getReviews(c, productID)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		serviceAddress := myhttp.ServiceAddress()
		for i := range reviews {
			reviews[i].ServiceAddress = serviceAddress
		}

		responseWriter.Write(c, w, http.StatusOK, reviews)
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
