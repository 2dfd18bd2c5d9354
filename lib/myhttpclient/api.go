package myhttpclient

import (
	"context"
	"net/http"
	"time"
)

//go:generate mockgen -source=api.go -package myhttpclient -destination sender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

// New creates the sender shared by every component of the process.
func New(timeout time.Duration) HTTPSender {
	return newJSONHTTPClient(&http.Client{
		Timeout: timeout,
	})
}
