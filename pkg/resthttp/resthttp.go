package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const headerKeyRequestID = "X-Request-Id"

var (
	runOnce     sync.Once
	restyClient *resty.Client
)

// Error non-2xx response
type Error struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code,omitempty"`
	Message    string `json:"msg,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}

	return fmt.Sprintf("http status %d: [%d] %s", e.StatusCode, e.Code, e.Message)
}

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request, the request id of ctx is forwarded
func Request(ctx context.Context) *resty.Request {
	r := Client().R().SetContext(ctx)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		r.SetHeader(headerKeyRequestID, id)
	}

	return r
}

type requestIDKey struct{}

// WithRequestID attach a request id forwarded by Request
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ParseResponse decode a success body into obj, or the error body into *Error
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		e := &Error{StatusCode: r.StatusCode()}
		_ = json.Unmarshal(r.Body(), e)
		return e
	}

	if obj == nil {
		return nil
	}

	if err := json.Unmarshal(r.Body(), obj); err != nil {
		logger.FromContext(r.Request.Context()).WithError(err).Errorln("parse response", r.Request.URL)
		return err
	}

	return nil
}
