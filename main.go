package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/productcomposite/lib/myconfig"
	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/mypublisher"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/lib/mystore"
	"github.com/MarcGrol/productcomposite/lib/mytime"
	"github.com/MarcGrol/productcomposite/lib/mytrace"
	"github.com/MarcGrol/productcomposite/lib/myuuid"
	"github.com/MarcGrol/productcomposite/services/composite"
	"github.com/MarcGrol/productcomposite/services/health"
	"github.com/MarcGrol/productcomposite/services/product"
	"github.com/MarcGrol/productcomposite/services/recommendation"
	"github.com/MarcGrol/productcomposite/services/review"
	"github.com/MarcGrol/productcomposite/services/review/reviewstore"
)

func main() {
	c := context.Background()

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	shutdownTracing, err := mytrace.Init(c, cfg.Tracing)
	if err != nil {
		log.Fatalf("Error initializing tracing: %s", err)
	}
	defer shutdownTracing(c)

	router := mux.NewRouter()

	sender := myhttpclient.New(cfg.HTTPClientTimeout)

	pubsub, pubsubCleanup, err := mypubsub.New(c, mypubsub.Options{
		ProjectID: cfg.GoogleCloudProject,
		RedisAddr: cfg.RedisAddr,
		Sender:    sender,
		UUIDer:    myuuid.RealUUIDer{},
	})
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	{
		productStore, productStoreCleanup, err := mystore.New[product.ProductEntity](c)
		if err != nil {
			log.Fatalf("Error creating product store: %s", err)
		}
		defer productStoreCleanup()

		err = product.NewWebService(productStore, pubsub, cfg.PublicBaseURL).RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering product service: %s", err)
		}
	}

	{
		recommendationStore, recommendationStoreCleanup, err := mystore.New[recommendation.RecommendationEntity](c)
		if err != nil {
			log.Fatalf("Error creating recommendation store: %s", err)
		}
		defer recommendationStoreCleanup()

		err = recommendation.NewWebService(recommendationStore, pubsub, cfg.PublicBaseURL).RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering recommendation service: %s", err)
		}
	}

	{
		reviewStore, reviewStoreCleanup, err := newReviewStore(cfg.ReviewDatabaseDSN)
		if err != nil {
			log.Fatalf("Error creating review store: %s", err)
		}
		defer reviewStoreCleanup()

		err = review.NewWebService(reviewStore, pubsub, cfg.PublicBaseURL).RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering review service: %s", err)
		}
	}

	{
		urls := composite.ServiceURLs{
			Product:        cfg.ProductServiceURL,
			Recommendation: cfg.RecommendationServiceURL,
			Review:         cfg.ReviewServiceURL,
		}
		client := composite.NewBackingClient(sender, urls)
		publisher := mypublisher.New(pubsub, mytime.RealNower{})

		compositeService := composite.NewWebService(client, client, client, publisher, health.NewProber(sender),
			composite.HealthTargets(urls), mytime.RealNower{})
		err = compositeService.RegisterEndpoints(c, router)
		if err != nil {
			log.Fatalf("Error registering composite service: %s", err)
		}
	}

	startWebServerBlocking(cfg.Port, router)
}

func newReviewStore(dsn string) (reviewstore.Store, func(), error) {
	if dsn == "" {
		return reviewstore.NewInMemory("reviews")
	}
	return reviewstore.New(dsn)
}

func startWebServerBlocking(port string, router *mux.Router) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
