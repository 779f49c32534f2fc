// Package payuri implements the BIP 21 payment request URI format for
// Bitcoin Cash.
//
// A payment URI carries a recipient address plus optional hints for the
// paying wallet:
//
//	bitcoincash:<address>?amount=<amount>&label=<label>&message=<message>
//
// The CashAddr prefix doubles as the URI scheme, so the address part is
// simply a CashAddr string. Legacy Base58Check addresses are accepted in
// the address position as well.
//
// Amounts are whole coins with at most eight decimal places. Parameters
// prefixed with "req-" are required by the sender; a wallet that does not
// understand one must treat the whole URI as invalid, and since this
// package understands none, any req- parameter fails the parse.
package payuri

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/suffix-labs/bchkey/pkg/keys"
)

// PaymentRequest is a decoded payment URI.
//
// Optional parameters are pointers so that an absent parameter is
// distinguishable from an explicit zero or empty value.
type PaymentRequest struct {
	Address keys.Address // Recipient address
	Amount  *float64     // Requested amount in whole coins (nil = payer decides)
	Label   *string      // Short name for the recipient
	Message *string      // Note describing the payment
}

// Parse decodes a BIP 21 payment URI.
//
// The address part may be a prefixed CashAddr, a bare CashAddr payload,
// or a legacy Base58Check address. Unknown query parameters are ignored
// unless they carry the req- prefix.
func Parse(uri string) (*PaymentRequest, error) {
	if uri == "" {
		return nil, &keys.InvalidFormatError{Message: "empty payment URI"}
	}

	base, query, _ := strings.Cut(uri, "?")
	if base == "" {
		return nil, &keys.InvalidFormatError{Message: "payment URI has no address"}
	}

	addr, err := keys.ParseAddress(base)
	if err != nil {
		return nil, err
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return nil, &keys.InvalidFormatError{Message: "malformed query string", Cause: err}
	}

	for key := range params {
		if strings.HasPrefix(key, "req-") {
			return nil, &keys.InvalidFormatError{
				Message: fmt.Sprintf("unsupported required parameter %q", key),
			}
		}
	}

	req := &PaymentRequest{Address: addr}

	if amountStr := params.Get("amount"); amountStr != "" {
		amount, err := parseAmount(amountStr)
		if err != nil {
			return nil, err
		}
		req.Amount = &amount
	}
	if label := params.Get("label"); label != "" {
		req.Label = &label
	}
	if message := params.Get("message"); message != "" {
		req.Message = &message
	}

	return req, nil
}

// Encode renders the request as a URI string, the inverse of Parse.
// The address is always written in prefixed CashAddr form. Amounts the
// BIP 21 grammar cannot express, negative or non-finite, are an error
// rather than an unparseable URI.
func (req *PaymentRequest) Encode() (string, error) {
	uri := req.Address.String()

	params := url.Values{}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return "", &keys.InvalidFormatError{Message: "amount is negative"}
		}
		if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
			return "", &keys.InvalidFormatError{Message: "amount is not finite"}
		}
		params.Add("amount", formatAmount(*req.Amount))
	}
	if req.Label != nil {
		params.Add("label", *req.Label)
	}
	if req.Message != nil {
		params.Add("message", *req.Message)
	}

	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	return uri, nil
}

// parseAmount parses a decimal coin amount.
//
// The BIP 21 grammar allows only digits and an optional fractional part;
// signs, exponents, and more than eight decimal places are rejected.
func parseAmount(s string) (float64, error) {
	digits := 0
	dot := -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			if dot >= 0 {
				return 0, &keys.InvalidFormatError{Message: "amount has more than one decimal point"}
			}
			dot = i
		default:
			return 0, &keys.InvalidFormatError{
				Message: fmt.Sprintf("invalid character %q in amount", c),
			}
		}
	}
	if digits == 0 {
		return 0, &keys.InvalidFormatError{Message: "amount has no digits"}
	}
	if dot >= 0 && len(s)-dot-1 > 8 {
		return 0, &keys.InvalidFormatError{Message: "amount has more than eight decimal places"}
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &keys.InvalidFormatError{Message: "amount is not a valid number", Cause: err}
	}
	return amount, nil
}

// formatAmount renders an amount with up to eight decimal places,
// trailing zeros removed.
func formatAmount(amount float64) string {
	str := strconv.FormatFloat(amount, 'f', 8, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimRight(str, ".")
	return str
}
