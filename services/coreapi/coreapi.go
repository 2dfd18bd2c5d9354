// Package coreapi holds the JSON resources exchanged between the composite and the backing services.
package coreapi

type Product struct {
	ProductID      int    `json:"productId"`
	Name           string `json:"name"`
	Weight         int    `json:"weight"`
	ServiceAddress string `json:"serviceAddress,omitempty"`
}

type Recommendation struct {
	ProductID        int    `json:"productId"`
	RecommendationID int    `json:"recommendationId"`
	Author           string `json:"author"`
	Rate             int    `json:"rate"`
	Content          string `json:"content"`
	ServiceAddress   string `json:"serviceAddress,omitempty"`
}

type Review struct {
	ProductID      int    `json:"productId"`
	ReviewID       int    `json:"reviewId"`
	Author         string `json:"author"`
	Subject        string `json:"subject"`
	Content        string `json:"content"`
	ServiceAddress string `json:"serviceAddress,omitempty"`
}

type HealthStatus string

const (
	HealthUp   HealthStatus = "UP"
	HealthDown HealthStatus = "DOWN"
)

type Health struct {
	Status HealthStatus `json:"status"`
}

type HealthReport struct {
	Status     HealthStatus            `json:"status"`
	Components map[string]HealthStatus `json:"components"`
}
