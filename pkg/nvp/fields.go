package nvp

// GatewayConfig holds the API credentials and options sent with every request.
type GatewayConfig map[string]string

// TransactionFields describes the customer, card, amount and currency of a payment.
type TransactionFields map[string]string

const (
	FieldUser          = "USER"
	FieldPassword      = "PWD"
	FieldSignature     = "SIGNATURE"
	FieldVersion       = "VERSION"
	FieldMethod        = "METHOD"
	FieldPaymentAction = "PAYMENTACTION"
	FieldEndpoint      = "ENDPOINT"
)

const (
	FieldFirstName      = "FIRSTNAME"
	FieldLastName       = "LASTNAME"
	FieldStreet         = "STREET"
	FieldCity           = "CITY"
	FieldState          = "STATE"
	FieldZip            = "ZIP"
	FieldCountryCode    = "COUNTRYCODE"
	FieldIPAddress      = "IPADDRESS"
	FieldCreditCardType = "CREDITCARDTYPE"
	FieldAccount        = "ACCT"
	FieldExpDate        = "EXPDATE"
	FieldCVV2           = "CVV2"
	FieldAmount         = "AMT"
	FieldCurrencyCode   = "CURRENCYCODE"
	FieldDescription    = "DESC"
)

const (
	MethodDoDirectPayment = "DoDirectPayment"
	PaymentActionSale     = "Sale"

	DefaultVersion      = "119.0"
	DefaultCountryCode  = "US"
	DefaultCurrencyCode = "USD"
)

const (
	SandboxEndpoint    = "https://api-3t.sandbox.paypal.com/nvp"
	ProductionEndpoint = "https://api-3t.paypal.com/nvp"
)

// Endpoint returns the NVP URL for the selected environment.
func Endpoint(sandbox bool) string {
	if sandbox {
		return SandboxEndpoint
	}

	return ProductionEndpoint
}
