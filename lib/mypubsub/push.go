package mypubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/productcomposite/lib/myevents"
	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
)

// push delivers one message to a subscriber the way Cloud Pub/Sub push subscriptions do.
// Any non-2xx answer counts as a negative acknowledgement.
func push(c context.Context, sender myhttpclient.HTTPSender, topic string, urlToPostTo string, messageID string, data []byte) error {
	body, err := json.Marshal(myevents.NewPushRequest(topic, messageID, data))
	if err != nil {
		return fmt.Errorf("error marshalling push-request: %w", err)
	}

	status, respBody, err := sender.Send(c, http.MethodPost, urlToPostTo, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("subscriber %s answered %d: %s", urlToPostTo, status, string(respBody))
	}

	return nil
}
