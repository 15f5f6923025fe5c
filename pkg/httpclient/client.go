package httpclient

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

var _ HTTPClient = (*httpClient)(nil)

type HTTPClient interface {
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
}

type Config struct {
	Timeout time.Duration `mapstructure:"timeout"`
	// InsecureSkipVerify disables peer certificate chain verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// DefaultConfig keeps peer verification off to match the legacy NVP integration.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout, InsecureSkipVerify: true}
}

type httpClient struct {
	Client *http.Client
}

func NewHTTPClient(cfg Config) HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
		},
		DisableKeepAlives: true,
	}

	return &httpClient{Client: &http.Client{Timeout: cfg.Timeout, Transport: transport}}
}

func (c *httpClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, headers)
	return c.Client.Do(req)
}

func (c *httpClient) setHeaders(req *http.Request, headers map[string]string) {
	if len(headers) == 0 {
		return
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
