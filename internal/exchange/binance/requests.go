package binance

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"binance-spot/internal/core"
)

// SignedRequest describes one authenticated call. Params already end with
// the signature; the query is sent exactly as it was signed.
type SignedRequest struct {
	Method string
	URL    string
	Params *Params
	Header http.Header
}

func (r SignedRequest) Query() string {
	return r.Params.Encode()
}

func (r SignedRequest) FullURL() string {
	if q := r.Query(); q != "" {
		return r.URL + "?" + q
	}
	return r.URL
}

// HTTPRequest fails when the signed query would not reach the wire unchanged,
// e.g. a value containing '#', a space or a control byte.
func (r SignedRequest) HTTPRequest(ctx context.Context) (*http.Request, error) {
	query := r.Query()
	if i := strings.IndexFunc(query, unsendable); i >= 0 {
		return nil, fmt.Errorf("%w: query byte %q at %d cannot be sent unescaped", core.ErrInvalidArgument, query[i], i)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.FullURL(), nil)
	if err != nil {
		return nil, err
	}
	if req.URL.RawQuery != query || req.URL.Fragment != "" {
		return nil, fmt.Errorf("%w: query %q would be sent as %q", core.ErrInvalidArgument, query, req.URL.RawQuery)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func unsendable(r rune) bool {
	return r == '#' || r <= ' ' || r == 0x7f
}

// BuildOrderRequest signs a GTC limit order for POST /order.
func (s *Signer) BuildOrderRequest(symbol string, side core.Side, quantity, price decimal.Decimal) (SignedRequest, error) {
	var merr *multierror.Error
	merr = multierror.Append(merr, requireValue("symbol", symbol))
	if !side.Valid() {
		merr = multierror.Append(merr, fmt.Errorf("%w: side must be BUY or SELL, got %q", core.ErrInvalidArgument, side))
	}
	merr = multierror.Append(merr, requirePositive("quantity", quantity))
	merr = multierror.Append(merr, requirePositive("price", price))
	if err := merr.ErrorOrNil(); err != nil {
		return SignedRequest{}, err
	}

	params := NewParams()
	params.Set("symbol", symbol)
	params.Set("side", string(side))
	params.Set("type", string(core.Limit))
	params.Set("quantity", formatDecimal(quantity))
	params.Set("price", formatDecimal(price))
	params.Set("timeInForce", string(core.GoodTillCanceled))
	params.Set(paramTimestamp, s.timestamp())
	return s.signed(http.MethodPost, "/order", params)
}

func (s *Signer) BuildBalanceRequest() (SignedRequest, error) {
	params := NewParams()
	params.Set(paramTimestamp, s.timestamp())
	return s.signed(http.MethodGet, "/account", params)
}

func (s *Signer) BuildOrderStatusRequest(symbol, orderID string) (SignedRequest, error) {
	var merr *multierror.Error
	merr = multierror.Append(merr, requireValue("symbol", symbol))
	merr = multierror.Append(merr, requireValue("orderId", orderID))
	if err := merr.ErrorOrNil(); err != nil {
		return SignedRequest{}, err
	}

	params := NewParams()
	params.Set("symbol", symbol)
	params.Set("orderId", orderID)
	params.Set(paramTimestamp, s.timestamp())
	return s.signed(http.MethodGet, "/order", params)
}

// requireValue and requirePositive return nil when the argument is fine;
// multierror.Append drops nil errors.
func requireValue(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s required", core.ErrInvalidArgument, name)
	}
	return nil
}

func requirePositive(name string, v decimal.Decimal) error {
	if v.Cmp(decimal.Zero) <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %s", core.ErrInvalidArgument, name, v.String())
	}
	return nil
}

// formatDecimal keeps the caller's scale, so "50000.0" stays "50000.0".
func formatDecimal(v decimal.Decimal) string {
	if exp := v.Exponent(); exp < 0 {
		return v.StringFixed(-exp)
	}
	return v.String()
}
