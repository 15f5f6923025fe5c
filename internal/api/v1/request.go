package v1

import "github.com/Behyna/directpayment/pkg/nvp"

type DirectPaymentRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=25"`
	LastName       string `json:"last_name" validate:"required,max=25"`
	Street         string `json:"street" validate:"required,max=100"`
	City           string `json:"city" validate:"required,max=40"`
	State          string `json:"state" validate:"required,max=40"`
	Zip            string `json:"zip" validate:"required,max=20"`
	CountryCode    string `json:"country_code" validate:"omitempty,len=2,alpha"`
	CardType       string `json:"card_type" validate:"required,oneof=Visa MasterCard Discover Amex Maestro"`
	CardNumber     string `json:"card_number" validate:"required,credit_card"`
	ExpirationDate string `json:"expiration_date" validate:"required,expdate"`
	CVV2           string `json:"cvv2" validate:"required,numeric,min=3,max=4"`
	Amount         string `json:"amount" validate:"required,amount"`
	CurrencyCode   string `json:"currency_code" validate:"omitempty,len=3,alpha"`
	Description    string `json:"description" validate:"required,max=127"`
	IPAddress      string `json:"ip_address" validate:"omitempty,ip"`
}

// TransactionFields maps the request onto NVP field names. Optional fields
// left empty are omitted so the requester can default them.
func (r DirectPaymentRequest) TransactionFields() nvp.TransactionFields {
	fields := nvp.TransactionFields{
		nvp.FieldFirstName:      r.FirstName,
		nvp.FieldLastName:       r.LastName,
		nvp.FieldStreet:         r.Street,
		nvp.FieldCity:           r.City,
		nvp.FieldState:          r.State,
		nvp.FieldZip:            r.Zip,
		nvp.FieldCreditCardType: r.CardType,
		nvp.FieldAccount:        r.CardNumber,
		nvp.FieldExpDate:        r.ExpirationDate,
		nvp.FieldCVV2:           r.CVV2,
		nvp.FieldAmount:         r.Amount,
		nvp.FieldDescription:    r.Description,
	}

	optional := map[string]string{
		nvp.FieldCountryCode:  r.CountryCode,
		nvp.FieldCurrencyCode: r.CurrencyCode,
		nvp.FieldIPAddress:    r.IPAddress,
	}
	for key, value := range optional {
		if value != "" {
			fields[key] = value
		}
	}

	return fields
}
