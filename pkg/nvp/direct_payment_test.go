package nvp_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/Behyna/directpayment/pkg/httpclient"
	"github.com/Behyna/directpayment/pkg/mocks"
	"github.com/Behyna/directpayment/pkg/nvp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var formHeaders = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

func gatewayConfig() nvp.GatewayConfig {
	return nvp.GatewayConfig{
		"USER":      "u",
		"PWD":       "p",
		"SIGNATURE": "s",
		"VERSION":   "119.0",
	}
}

func transactionFields() nvp.TransactionFields {
	return nvp.TransactionFields{
		"FIRSTNAME":      "Jane",
		"LASTNAME":       "Doe",
		"STREET":         "1 Main St",
		"CITY":           "San Jose",
		"STATE":          "CA",
		"ZIP":            "95131",
		"CREDITCARDTYPE": "Visa",
		"ACCT":           "4111111111111111",
		"EXPDATE":        "012030",
		"CVV2":           "123",
		"AMT":            "10.00",
		"DESC":           "Court booking",
	}
}

func parseBody(t *testing.T, body string) url.Values {
	t.Helper()
	require.True(t, strings.HasPrefix(body, "&"), "body must start with '&'")

	values, err := url.ParseQuery(strings.TrimPrefix(body, "&"))
	require.NoError(t, err)
	return values
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDirectPayment_Prepare(t *testing.T) {
	t.Run("defaults applied when fields absent", func(t *testing.T) {
		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gatewayConfig(), transactionFields(),
			nvp.WithRemoteAddr("203.0.113.7"))

		values := parseBody(t, dp.Prepare().Body)

		assert.Equal(t, "US", values.Get("COUNTRYCODE"))
		assert.Equal(t, "USD", values.Get("CURRENCYCODE"))
		assert.Equal(t, "203.0.113.7", values.Get("IPADDRESS"))
		assert.Equal(t, "DoDirectPayment", values.Get("METHOD"))
		assert.Equal(t, "Sale", values.Get("PAYMENTACTION"))
		assert.Equal(t, "10.00", values.Get("AMT"))
		assert.Equal(t, "Jane", values.Get("FIRSTNAME"))
		assert.Equal(t, []string{"COUNTRYCODE", "CURRENCYCODE", "IPADDRESS"}, dp.Prepare().Defaulted)
	})

	t.Run("defaults applied when fields blank", func(t *testing.T) {
		tx := transactionFields()
		tx["COUNTRYCODE"] = ""
		tx["CURRENCYCODE"] = "   "
		tx["IPADDRESS"] = "\t\n"

		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gatewayConfig(), tx, nvp.WithRemoteAddr("10.0.0.1"))
		req := dp.Prepare()

		assert.Equal(t, "US", req.Transaction["COUNTRYCODE"])
		assert.Equal(t, "USD", req.Transaction["CURRENCYCODE"])
		assert.Equal(t, "10.0.0.1", req.Transaction["IPADDRESS"])
	})

	t.Run("caller values survive", func(t *testing.T) {
		tx := transactionFields()
		tx["COUNTRYCODE"] = "GB"
		tx["CURRENCYCODE"] = "GBP"
		tx["IPADDRESS"] = "198.51.100.20"

		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gatewayConfig(), tx, nvp.WithRemoteAddr("10.0.0.1"))
		values := parseBody(t, dp.Prepare().Body)

		assert.Equal(t, "GB", values.Get("COUNTRYCODE"))
		assert.Equal(t, "GBP", values.Get("CURRENCYCODE"))
		assert.Equal(t, "198.51.100.20", values.Get("IPADDRESS"))
		assert.Empty(t, dp.Prepare().Defaulted)
	})

	t.Run("method and payment action overwritten", func(t *testing.T) {
		gw := gatewayConfig()
		gw["METHOD"] = "RefundTransaction"
		gw["PAYMENTACTION"] = "Authorization"

		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gw, transactionFields())
		values := parseBody(t, dp.Prepare().Body)

		assert.Equal(t, []string{"DoDirectPayment"}, values["METHOD"])
		assert.Equal(t, []string{"Sale"}, values["PAYMENTACTION"])
	})

	t.Run("endpoint follows environment flag", func(t *testing.T) {
		production := nvp.NewDirectPayment(&mocks.HTTPClient{}, gatewayConfig(), transactionFields())
		sandbox := nvp.NewDirectPayment(&mocks.HTTPClient{}, gatewayConfig(), transactionFields(),
			nvp.WithSandbox(true))

		assert.Equal(t, nvp.ProductionEndpoint, production.Prepare().Endpoint)
		assert.Equal(t, nvp.ProductionEndpoint, production.Prepare().Gateway["ENDPOINT"])
		assert.Equal(t, nvp.SandboxEndpoint, sandbox.Prepare().Endpoint)
		assert.Equal(t, nvp.SandboxEndpoint, parseBody(t, sandbox.Prepare().Body).Get("ENDPOINT"))
	})

	t.Run("every key transmitted", func(t *testing.T) {
		gw := gatewayConfig()
		gw["BUTTONSOURCE"] = "partner"
		tx := transactionFields()
		tx["CUSTOM"] = "anything goes"

		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gw, tx)
		values := parseBody(t, dp.Prepare().Body)

		for key := range gw {
			assert.Contains(t, values, key)
		}
		for key := range tx {
			assert.Contains(t, values, key)
		}
		assert.Equal(t, "anything goes", values.Get("CUSTOM"))
	})

	t.Run("caller maps not mutated", func(t *testing.T) {
		gw := gatewayConfig()
		tx := transactionFields()

		dp := nvp.NewDirectPayment(&mocks.HTTPClient{}, gw, tx, nvp.WithRemoteAddr("10.0.0.1"))
		gw["USER"] = "changed"
		dp.Prepare()

		assert.NotContains(t, gw, "METHOD")
		assert.NotContains(t, gw, "ENDPOINT")
		assert.NotContains(t, tx, "COUNTRYCODE")
		assert.NotContains(t, tx, "IPADDRESS")
		assert.Equal(t, "u", parseBody(t, dp.Prepare().Body).Get("USER"))
	})
}

func TestDirectPayment_Do(t *testing.T) {
	t.Run("posts form body to resolved endpoint", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields(), nvp.WithSandbox(true),
			nvp.WithRemoteAddr("203.0.113.7"))

		var sent string
		mockClient.On("Post", context.Background(), nvp.SandboxEndpoint, mock.Anything, formHeaders).
			Run(func(args mock.Arguments) {
				body, _ := io.ReadAll(args.Get(2).(io.Reader))
				sent = string(body)
			}).
			Return(okResponse("ACK=Success&TRANSACTIONID=1AB23456CD789012E"), nil).Once()

		result := dp.Do(context.Background())

		require.True(t, result.OK())
		assert.NoError(t, result.Err)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, "ACK=Success&TRANSACTIONID=1AB23456CD789012E", result.Body)
		assert.Equal(t, dp.Prepare().Body, sent)
		mockClient.AssertExpectations(t)
	})

	t.Run("timeout error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields())

		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return((*http.Response)(nil), context.DeadlineExceeded).Once()

		result := dp.Do(context.Background())

		assert.False(t, result.OK())
		assert.Equal(t, nvp.FailureTimeout, result.Failure)
		assert.ErrorIs(t, result.Err, nvp.ErrTimeout)
		assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
		assert.Empty(t, result.Body)
		mockClient.AssertExpectations(t)
	})

	t.Run("network error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields())

		networkErr := errors.New("network connection failed")
		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return((*http.Response)(nil), networkErr).Once()

		result := dp.Do(context.Background())

		assert.Equal(t, nvp.FailureTransport, result.Failure)
		assert.ErrorIs(t, result.Err, nvp.ErrTransport)
		assert.ErrorIs(t, result.Err, networkErr)
		mockClient.AssertExpectations(t)
	})

	t.Run("body read error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields())

		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(iotest.ErrReader(errors.New("connection reset"))),
		}
		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return(resp, nil).Once()

		result := dp.Do(context.Background())

		assert.Equal(t, nvp.FailureResponse, result.Failure)
		assert.ErrorIs(t, result.Err, nvp.ErrResponse)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		mockClient.AssertExpectations(t)
	})

	t.Run("non 200 status still returns body", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields())

		resp := &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("ACK=Failure&L_ERRORCODE0=10001")),
		}
		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return(resp, nil).Once()

		result := dp.Do(context.Background())

		assert.True(t, result.OK())
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
		assert.Equal(t, "ACK=Failure&L_ERRORCODE0=10001", result.Body)
	})
}

func TestDirectPayment_Submit(t *testing.T) {
	t.Run("decline body returned as success", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields())

		decline := "ACK=Failure&L_ERRORCODE0=15005&L_SHORTMESSAGE0=Processor%20Decline"
		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return(okResponse(decline), nil).Once()

		body, ok := dp.Submit(context.Background())

		assert.True(t, ok)
		assert.Equal(t, decline, body)
		mockClient.AssertExpectations(t)
	})

	t.Run("transport failure returns sentinel", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		dp := nvp.NewDirectPayment(mockClient, gatewayConfig(), transactionFields(), nvp.WithLogger(zap.NewNop()))

		mockClient.On("Post", context.Background(), nvp.ProductionEndpoint, mock.Anything, formHeaders).
			Return((*http.Response)(nil), errors.New("dial tcp: no such host")).Once()

		body, ok := dp.Submit(context.Background())

		assert.False(t, ok)
		assert.Empty(t, body)
		mockClient.AssertExpectations(t)
	})
}

// redirectClient sends requests to a local server while recording the
// endpoint the requester asked for.
type redirectClient struct {
	inner     httpclient.HTTPClient
	target    string
	requested string
}

func (r *redirectClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	r.requested = url
	return r.inner.Post(ctx, r.target, body, headers)
}

func TestDirectPayment_SubmitOverHTTP(t *testing.T) {
	t.Run("scenario body reaches the gateway", func(t *testing.T) {
		var received url.Values
		var contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			assert.NoError(t, r.ParseForm())
			received = r.PostForm
			w.Write([]byte("ACK=Success&AMT=10.00&CURRENCYCODE=USD"))
		}))
		defer server.Close()

		client := &redirectClient{inner: httpclient.NewHTTPClient(httpclient.DefaultConfig()), target: server.URL}
		dp := nvp.NewDirectPayment(client, gatewayConfig(), transactionFields(), nvp.WithSandbox(true),
			nvp.WithRemoteAddr("192.0.2.10"))

		body, ok := dp.Submit(context.Background())

		require.True(t, ok)
		assert.Equal(t, "ACK=Success&AMT=10.00&CURRENCYCODE=USD", body)
		assert.Equal(t, nvp.SandboxEndpoint, client.requested)
		assert.Equal(t, "application/x-www-form-urlencoded", contentType)
		assert.Equal(t, "US", received.Get("COUNTRYCODE"))
		assert.Equal(t, "USD", received.Get("CURRENCYCODE"))
		assert.Equal(t, "192.0.2.10", received.Get("IPADDRESS"))
		assert.Equal(t, "DoDirectPayment", received.Get("METHOD"))
		assert.Equal(t, "Sale", received.Get("PAYMENTACTION"))
		assert.Equal(t, "u", received.Get("USER"))
		assert.Equal(t, "1 Main St", received.Get("STREET"))
	})

	t.Run("unreachable host returns sentinel", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		target := server.URL
		server.Close()

		client := &redirectClient{inner: httpclient.NewHTTPClient(httpclient.DefaultConfig()), target: target}
		dp := nvp.NewDirectPayment(client, gatewayConfig(), transactionFields())

		body, ok := dp.Submit(context.Background())

		assert.False(t, ok)
		assert.Empty(t, body)
		assert.Equal(t, nvp.ProductionEndpoint, client.requested)
	})

	t.Run("slow gateway reported as timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		inner := httpclient.NewHTTPClient(httpclient.Config{Timeout: 50 * time.Millisecond, InsecureSkipVerify: true})
		dp := nvp.NewDirectPayment(&redirectClient{inner: inner, target: server.URL}, gatewayConfig(),
			transactionFields())

		result := dp.Do(context.Background())

		assert.Equal(t, nvp.FailureTimeout, result.Failure)
		assert.ErrorIs(t, result.Err, nvp.ErrTimeout)
	})
}
