package nvp

import (
	"context"
	"io"
	"maps"
	"strings"

	"github.com/Behyna/directpayment/pkg/httpclient"
	"go.uber.org/zap"
)

var formHeaders = map[string]string{
	"Content-Type": "application/x-www-form-urlencoded",
}

// DirectPayment submits one DoDirectPayment sale. It keeps private copies of
// its inputs, so the caller's maps are never modified.
type DirectPayment struct {
	client      httpclient.HTTPClient
	gateway     GatewayConfig
	transaction TransactionFields
	sandbox     bool
	remoteAddr  string
	logger      *zap.Logger
}

type Option func(*DirectPayment)

// WithSandbox selects the sandbox endpoint when enabled. Production is the default.
func WithSandbox(sandbox bool) Option {
	return func(d *DirectPayment) {
		d.sandbox = sandbox
	}
}

// WithRemoteAddr sets the address used when the transaction carries no IPADDRESS.
func WithRemoteAddr(addr string) Option {
	return func(d *DirectPayment) {
		d.remoteAddr = addr
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *DirectPayment) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDirectPayment performs no validation; required fields are the caller's
// responsibility.
func NewDirectPayment(client httpclient.HTTPClient, gateway GatewayConfig, transaction TransactionFields,
	opts ...Option) *DirectPayment {
	d := &DirectPayment{
		client:      client,
		gateway:     copyFields(gateway),
		transaction: copyFields(transaction),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Request is a fully resolved submission.
type Request struct {
	Endpoint    string
	Body        string
	Gateway     GatewayConfig
	Transaction TransactionFields

	// Defaulted lists the transaction fields that received a default value.
	Defaulted []string
}

// Result is the outcome of one submission. A non-failure result carries the
// raw response body whatever the HTTP status or ACK value inside it.
type Result struct {
	Body       string
	StatusCode int
	Failure    FailureKind
	Err        error
	Defaulted  []string
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Submit posts the request and returns the raw body, or "" and false on any
// transport failure. The cause is logged.
func (d *DirectPayment) Submit(ctx context.Context) (string, bool) {
	result := d.Do(ctx)
	if !result.OK() {
		d.logger.Error("Direct payment submission failed",
			zap.String("endpoint", Endpoint(d.sandbox)),
			zap.Stringer("failure", result.Failure),
			zap.Error(result.Err))

		return "", false
	}

	return result.Body, true
}

// Do posts the request once and reports the outcome with its failure kind.
func (d *DirectPayment) Do(ctx context.Context) Result {
	req := d.prepare()

	resp, err := d.client.Post(ctx, req.Endpoint, strings.NewReader(req.Body), formHeaders)
	if err != nil {
		kind, cause := classifyPostError(err)
		return Result{Failure: kind, Err: cause, Defaulted: req.Defaulted}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		kind, cause := classifyReadError(err)
		return Result{StatusCode: resp.StatusCode, Failure: kind, Err: cause, Defaulted: req.Defaulted}
	}

	d.logger.Debug("Direct payment response received",
		zap.String("endpoint", req.Endpoint),
		zap.Int("statusCode", resp.StatusCode),
		zap.Int("bodySize", len(body)))

	return Result{Body: string(body), StatusCode: resp.StatusCode, Defaulted: req.Defaulted}
}

// Prepare resolves defaults, the endpoint and the body without sending anything.
func (d *DirectPayment) Prepare() Request {
	return d.prepare()
}

func (d *DirectPayment) prepare() Request {
	gateway, transaction, defaulted := d.applyDefaults()
	gateway[FieldEndpoint] = Endpoint(d.sandbox)

	return Request{
		Endpoint:    gateway[FieldEndpoint],
		Body:        Encode(gateway, transaction),
		Gateway:     gateway,
		Transaction: transaction,
		Defaulted:   defaulted,
	}
}

func (d *DirectPayment) applyDefaults() (GatewayConfig, TransactionFields, []string) {
	gateway := copyFields(d.gateway)
	transaction := copyFields(d.transaction)

	gateway[FieldMethod] = MethodDoDirectPayment
	gateway[FieldPaymentAction] = PaymentActionSale

	defaults := []struct{ key, value string }{
		{FieldCountryCode, DefaultCountryCode},
		{FieldCurrencyCode, DefaultCurrencyCode},
		{FieldIPAddress, d.remoteAddr},
	}

	var defaulted []string
	for _, def := range defaults {
		if strings.TrimSpace(transaction[def.key]) == "" {
			transaction[def.key] = def.value
			defaulted = append(defaulted, def.key)
		}
	}

	return gateway, transaction, defaulted
}

func copyFields[M ~map[string]string](fields M) M {
	out := make(M, len(fields)+3)
	maps.Copy(out, fields)
	return out
}
