package composite

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/productcomposite/lib/mycontext"
	"github.com/MarcGrol/productcomposite/lib/myhttp"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypublisher"
	"github.com/MarcGrol/productcomposite/lib/mytime"
	"github.com/MarcGrol/productcomposite/services/coreapi"
	"github.com/MarcGrol/productcomposite/services/coreevents"
	"github.com/MarcGrol/productcomposite/services/health"
)

type webService struct {
	logger        mylog.Logger
	aggregator    *aggregator
	publisher     mypublisher.Publisher
	prober        health.Prober
	healthTargets map[string]string
}

// NewWebService wires the aggregate endpoints. healthTargets maps a service name onto the
// base URL whose /health endpoint is probed.
func NewWebService(products ProductReader, recommendations RecommendationReader, reviews ReviewReader,
	publisher mypublisher.Publisher, prober health.Prober, healthTargets map[string]string, nower mytime.Nower) *webService {
	logger := mylog.New("composite")

	return &webService{
		logger:        logger,
		aggregator:    newAggregator(products, recommendations, reviews, publisher, nower, logger),
		publisher:     publisher,
		prober:        prober,
		healthTargets: healthTargets,
	}
}

// HealthTargets derives the probe targets from the service base URLs.
func HealthTargets(urls ServiceURLs) map[string]string {
	return map[string]string{
		"product":        urls.Product + "/product",
		"recommendation": urls.Recommendation + "/recommendation",
		"review":         urls.Review + "/review",
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/health", s.health()).Methods("GET")
	router.HandleFunc("/aggregate/{productId}", s.getAggregate()).Methods("GET")
	router.HandleFunc("/aggregate", s.createAggregate()).Methods("POST")
	router.HandleFunc("/aggregate/{productId}", s.deleteAggregate()).Methods("DELETE")

	for _, topic := range []string{coreevents.ProductsTopic, coreevents.RecommendationsTopic, coreevents.ReviewsTopic} {
		err := s.publisher.CreateTopic(c, topic)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *webService) getAggregate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		productID, err := coreapi.ParseProductID(mux.Vars(r)["productId"])
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		aggregate, err := s.aggregator.GetAggregate(c, productID)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, aggregate)
	}
}

func (s *webService) createAggregate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		aggregate, err := coreapi.NewAggregateFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		err = s.aggregator.CreateAggregate(c, aggregate)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Aggregate creation requested",
		})
	}
}

func (s *webService) deleteAggregate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		productID, err := coreapi.ParseProductID(mux.Vars(r)["productId"])
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		err = s.aggregator.DeleteAggregate(c, productID)
		if err != nil {
			responseWriter.WriteError(c, w, r, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Aggregate deletion requested",
		})
	}
}

func (s *webService) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		report := health.Check(c, s.prober, s.healthTargets)

		status := http.StatusOK
		if report.Status != coreapi.HealthUp {
			status = http.StatusServiceUnavailable
		}
		responseWriter.Write(c, w, status, report)
	}
}
