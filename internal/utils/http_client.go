package utils

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"go.uber.org/zap"
)

const maxLoggedBody = 2000

// LoggingTransport implements http.RoundTripper and logs requests and responses.
// Headers are never logged since they carry provider credentials.
type LoggingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and logs the request and response
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := logger.Log.With(zap.String("method", req.Method), zap.String("host", req.URL.Host), zap.String("path", req.URL.Path))

	if req.Body != nil && log.Core().Enabled(zap.DebugLevel) {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Restore body
		log.Debug("outbound request", zap.String("body", truncate(bodyBytes)))
	}

	start := time.Now()

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Warn("outbound request failed", zap.Duration("latency", duration), zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{zap.Int("status", resp.StatusCode), zap.Duration("latency", duration)}
	if resp.Body != nil && (resp.StatusCode >= 400 || log.Core().Enabled(zap.DebugLevel)) {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Restore body
		fields = append(fields, zap.String("body", truncate(bodyBytes)))
	}

	if resp.StatusCode >= 400 {
		log.Warn("outbound response", fields...)
	} else {
		log.Debug("outbound response", fields...)
	}

	return resp, nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...(truncated)"
	}
	return string(body)
}

// NewHTTPClient returns a new http.Client with logging enabled
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
