package binance

import (
	"errors"
	"strconv"
	"strings"

	"binance-spot/internal/core"
)

const (
	apiCodeNewOrderRejected = -2010
	apiCodeCancelRejected   = -2011
	apiCodeOrderNotFound    = -2013
)

type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// APIError is a rejection reported by the exchange in its {"code","msg"} body.
type APIError struct {
	Status int
	Code   int
	Msg    string
}

func (e APIError) Error() string {
	return "binance api error " + strconv.Itoa(e.Code) + ": " + e.Msg
}

// HTTPError is a non-2xx response whose body is not an exchange error.
type HTTPError struct {
	Status int
	Body   string
}

func (e HTTPError) Error() string {
	return "binance http error " + strconv.Itoa(e.Status) + ": " + e.Body
}

var apiErrorMessageKinds = map[string]error{
	"duplicate order sent.":                                  core.ErrDuplicateOrder,
	"account has insufficient balance for requested action.": core.ErrInsufficientBalance,
	"unknown order sent.":                                    core.ErrOrderNotFound,
	"order does not exist.":                                  core.ErrOrderNotFound,
	"order was canceled or expired.":                         core.ErrOrderExpired,
}

// classifyAPIError joins apiErr with the core kinds it maps to so callers can
// use errors.Is and still reach the raw APIError through errors.As.
func classifyAPIError(apiErr APIError) error {
	var kind error
	msg := strings.ToLower(strings.TrimSpace(apiErr.Msg))
	switch {
	case apiErrorMessageKinds[msg] != nil:
		kind = apiErrorMessageKinds[msg]
	case apiErr.Code == apiCodeOrderNotFound, apiErr.Code == apiCodeCancelRejected:
		kind = core.ErrOrderNotFound
	case apiErr.Code == apiCodeNewOrderRejected:
		kind = core.ErrOrderRejected
	}
	if kind == nil {
		return apiErr
	}
	return errors.Join(apiErr, kind)
}

func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if err == nil || !errors.As(err, &apiErr) {
		return APIError{}, false
	}
	return apiErr, true
}
