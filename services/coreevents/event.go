package coreevents

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MarcGrol/productcomposite/services/coreapi"
)

const (
	ProductsTopic        = "products"
	RecommendationsTopic = "recommendations"
	ReviewsTopic         = "reviews"
)

type EventType string

const (
	Create EventType = "CREATE"
	Delete EventType = "DELETE"
)

// Payload is one of ProductData, RecommendationData, ReviewData or NoData.
type Payload interface {
	dataKind() string
}

type NoData struct{}

type ProductData coreapi.Product

type RecommendationData coreapi.Recommendation

type ReviewData coreapi.Review

func (NoData) dataKind() string             { return "" }
func (ProductData) dataKind() string        { return "product" }
func (RecommendationData) dataKind() string { return "recommendation" }
func (ReviewData) dataKind() string         { return "review" }

// Event instructs a backing service to create or delete state for a product.
// Data is present exactly when Type is Create.
type Event struct {
	Type           EventType
	Key            int
	Data           Payload
	EventCreatedAt time.Time
}

func NewCreateEvent(key int, data Payload, createdAt time.Time) (Event, error) {
	if data == nil || data.dataKind() == "" {
		return Event{}, fmt.Errorf("create event for key %d requires data", key)
	}
	return Event{
		Type:           Create,
		Key:            key,
		Data:           data,
		EventCreatedAt: createdAt,
	}, nil
}

func NewDeleteEvent(key int, createdAt time.Time) Event {
	return Event{
		Type:           Delete,
		Key:            key,
		Data:           NoData{},
		EventCreatedAt: createdAt,
	}
}

// IsSameEvent ignores the creation time, so a redelivered or re-emitted event matches the first delivery.
func (e Event) IsSameEvent(other Event) bool {
	return e.Type == other.Type && e.Key == other.Key && e.data() == other.data()
}

func (e Event) data() Payload {
	if e.Data == nil {
		return NoData{}
	}
	return e.Data
}

func (e Event) GetEventTypeName() string {
	return string(e.Type)
}

func (e Event) GetAggregateName() string {
	return strconv.Itoa(e.Key)
}

func (e Event) GetEventCreatedAt() time.Time {
	return e.EventCreatedAt
}

// The creation time travels in the envelope, not in the payload.
type wireEvent struct {
	Type     EventType       `json:"type"`
	Key      int             `json:"key"`
	DataKind string          `json:"dataKind,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{
		Type: e.Type,
		Key:  e.Key,
	}
	data := e.data()
	if data.dataKind() != "" {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		w.DataKind = data.dataKind()
		w.Data = raw
	}
	return json.Marshal(w)
}

func (e *Event) UnmarshalJSON(b []byte) error {
	w := wireEvent{}
	err := json.Unmarshal(b, &w)
	if err != nil {
		return err
	}

	var data Payload
	switch w.DataKind {
	case "":
		data = NoData{}
	case ProductData{}.dataKind():
		p := ProductData{}
		err = json.Unmarshal(w.Data, &p)
		data = p
	case RecommendationData{}.dataKind():
		r := RecommendationData{}
		err = json.Unmarshal(w.Data, &r)
		data = r
	case ReviewData{}.dataKind():
		r := ReviewData{}
		err = json.Unmarshal(w.Data, &r)
		data = r
	default:
		return fmt.Errorf("unknown data kind %q", w.DataKind)
	}
	if err != nil {
		return fmt.Errorf("error decoding %s data: %w", w.DataKind, err)
	}

	switch w.Type {
	case Create:
		if data.dataKind() == "" {
			return fmt.Errorf("create event for key %d without data", w.Key)
		}
	case Delete:
		if data.dataKind() != "" {
			return fmt.Errorf("delete event for key %d carries data", w.Key)
		}
	}

	*e = Event{
		Type: w.Type,
		Key:  w.Key,
		Data: data,
	}
	return nil
}
