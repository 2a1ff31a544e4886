package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"car-catalog-api/internal/constants"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Adapter serves API Gateway HTTP API (v2) events through an http.Handler,
// so the Lambda deployment shares the router of the HTTP server.
type Adapter struct {
	handler http.Handler
	logger  *zap.Logger
}

func NewAdapter(handler http.Handler, logger *zap.Logger) *Adapter {
	return &Adapter{
		handler: handler,
		logger:  logger,
	}
}

// Handle is the Lambda entry point
func (a *Adapter) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := newHTTPRequest(ctx, request)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("%s Invalid Lambda request", constants.APIName()), zap.Error(err))
		return createResponse(http.StatusBadRequest, `{"error":"Bad request","status":400}`), nil
	}

	a.logger.Debug(fmt.Sprintf("%s Lambda request", constants.APIName()),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	w := newResponseRecorder()
	a.handler.ServeHTTP(w, req)

	return w.toResponse(), nil
}

func newHTTPRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	method := request.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}

	path := request.RawPath
	if path == "" {
		path = request.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}

	target := &url.URL{Path: path, RawQuery: request.RawQueryString}

	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
		body = decoded
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for name, value := range request.Headers {
		req.Header.Set(name, value)
	}
	if len(request.Cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(request.Cookies, "; "))
	}
	if request.RequestContext.HTTP.SourceIP != "" {
		req.RemoteAddr = request.RequestContext.HTTP.SourceIP + ":0"
	}
	req.Host = request.RequestContext.DomainName

	return req, nil
}

func createResponse(statusCode int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// responseRecorder buffers what the router writes
type responseRecorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header)}
}

func (r *responseRecorder) Header() http.Header {
	return r.header
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(p)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
	}
}

func (r *responseRecorder) toResponse() events.APIGatewayV2HTTPResponse {
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}

	headers := make(map[string]string, len(r.header))
	var cookies []string
	for name, values := range r.header {
		if name == "Set-Cookie" {
			cookies = append(cookies, values...)
			continue
		}
		headers[name] = strings.Join(values, ",")
	}

	resp := events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
		Cookies:    cookies,
	}

	if utf8.Valid(r.body.Bytes()) {
		resp.Body = r.body.String()
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(r.body.Bytes())
		resp.IsBase64Encoded = true
	}

	return resp
}
