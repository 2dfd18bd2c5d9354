package myhttp

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mytime"
)

type ResponseWriter interface {
	WriteError(c context.Context, w http.ResponseWriter, r *http.Request, err error)
	Write(c context.Context, w http.ResponseWriter, httpStatus int, resp interface{})
}

// ErrorInfo is the structured error body returned by every service and parsed by the composite.
type ErrorInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func NewWriter(logger mylog.Logger) ResponseWriter {
	return &responseWriter{
		logger: logger,
		nower:  mytime.RealNower{},
	}
}

type responseWriter struct {
	logger mylog.Logger
	nower  mytime.Nower
}

func (rw responseWriter) WriteError(c context.Context, w http.ResponseWriter, r *http.Request, err error) {
	httpStatus := myerrors.GetHTTPStatus(err)
	rw.logger.Log(c, "", mylog.SeverityWarn, "Error response: http-status:%d, kind:%s, error-msg:%s", httpStatus, myerrors.GetKind(err), err)
	rw.write(w, httpStatus, ErrorInfo{
		Timestamp: rw.nower.Now(),
		Path:      r.URL.Path,
		Status:    httpStatus,
		Message:   myerrors.GetMessage(err),
	})
}

func (rw responseWriter) Write(c context.Context, w http.ResponseWriter, httpStatus int, resp interface{}) {
	rw.logger.Log(c, "", mylog.SeverityDebug, "Success response: http-status:%d", httpStatus)
	rw.write(w, httpStatus, resp)
}

func (rw responseWriter) write(w http.ResponseWriter, httpStatus int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	err := encoder.Encode(resp)
	if err != nil {
		log.Printf("Error writing response: %s", err)
		return
	}
}
