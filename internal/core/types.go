package core

import "strings"

type Side string

type OrderType string

type TimeInForce string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

const (
	Limit OrderType = "LIMIT"
)

const (
	GoodTillCanceled TimeInForce = "GTC"
)

func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// ParseSide upper-cases and trims v. The result is not checked; call Valid.
func ParseSide(v string) Side {
	return Side(strings.ToUpper(strings.TrimSpace(v)))
}
