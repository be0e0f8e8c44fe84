package nets

import (
	"net/http"
	"net/url"
	"time"

	"github.com/reusee/gamesheet/logs"
)

type HTTPClient = *http.Client

// RequestTimeout bounds one remote sheet request.
const RequestTimeout = time.Minute

func (Module) HTTPClient(
	dialer Dialer,
	getProxyURL GetProxyURL,
	logger logs.Logger,
) HTTPClient {
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: loggingTransport{
			logger: logger,
			next: &http.Transport{
				DialContext: dialer.DialContext,
				// socks proxies are handled by the dialer
				Proxy: func(*http.Request) (*url.URL, error) {
					u, err := getProxyURL()
					if err != nil || u == nil || !isHTTPProxy(u) {
						return nil, err
					}
					return u, nil
				},
			},
		},
	}
}

type loggingTransport struct {
	logger logs.Logger
	next   http.RoundTripper
}

func (l loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		l.logger.DebugContext(req.Context(), "http request",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return nil, err
	}
	l.logger.DebugContext(req.Context(), "http request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}
