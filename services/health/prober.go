// Package health probes the liveness endpoints of the backing services.
package health

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/services/coreapi"
)

//go:generate mockgen -source=prober.go -package health -destination prober_mock.go Prober
type Prober interface {
	// Probe never fails: every problem reaching the service reads as DOWN.
	Probe(c context.Context, serviceURL string) coreapi.HealthStatus
}

type httpProber struct {
	sender myhttpclient.HTTPSender
	logger mylog.Logger
}

func NewProber(sender myhttpclient.HTTPSender) Prober {
	return &httpProber{
		sender: sender,
		logger: mylog.New("health"),
	}
}

func (p *httpProber) Probe(c context.Context, serviceURL string) coreapi.HealthStatus {
	status, _, err := p.sender.Send(c, http.MethodGet, serviceURL+"/health", nil)
	if err != nil {
		p.logger.Log(c, "", mylog.SeverityWarn, "Health probe of %s failed: %s", serviceURL, err)
		return coreapi.HealthDown
	}
	if status < 200 || status > 299 {
		p.logger.Log(c, "", mylog.SeverityWarn, "Health probe of %s answered %d", serviceURL, status)
		return coreapi.HealthDown
	}
	return coreapi.HealthUp
}

// Check probes every named service concurrently. The overall status is UP only when every service is.
func Check(c context.Context, prober Prober, serviceURLs map[string]string) coreapi.HealthReport {
	report := coreapi.HealthReport{
		Status:     coreapi.HealthUp,
		Components: map[string]coreapi.HealthStatus{},
	}

	var mu sync.Mutex
	var eg errgroup.Group
	for name, url := range serviceURLs {
		eg.Go(func() error {
			status := prober.Probe(c, url)

			mu.Lock()
			defer mu.Unlock()
			report.Components[name] = status
			if status != coreapi.HealthUp {
				report.Status = coreapi.HealthDown
			}
			return nil
		})
	}
	_ = eg.Wait()

	return report
}
