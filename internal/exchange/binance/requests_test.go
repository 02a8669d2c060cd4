package binance

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"binance-spot/internal/core"
)

func TestBuildOrderRequest(t *testing.T) {
	s := newTestSigner(t)
	req, err := s.BuildOrderRequest("BTCUSDT", core.Buy, decimal.RequireFromString("1.5"), decimal.RequireFromString("50000.0"))
	if err != nil {
		t.Fatalf("BuildOrderRequest() error = %v", err)
	}
	if req.Method != http.MethodPost {
		t.Fatalf("Method = %s, want POST", req.Method)
	}
	if req.URL != DefaultBaseURL+"/order" {
		t.Fatalf("URL = %s, want %s", req.URL, DefaultBaseURL+"/order")
	}
	if got := req.Header.Get("X-MBX-APIKEY"); got != "k" {
		t.Fatalf("X-MBX-APIKEY = %q, want k", got)
	}
	wantKeys := []string{"symbol", "side", "type", "quantity", "price", "timeInForce", "timestamp", "signature"}
	if got := req.Params.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}
	if v, _ := req.Params.Get("type"); v != "LIMIT" {
		t.Fatalf("type = %q, want LIMIT", v)
	}
	if v, _ := req.Params.Get("timeInForce"); v != "GTC" {
		t.Fatalf("timeInForce = %q, want GTC", v)
	}

	unsigned := "symbol=BTCUSDT&side=BUY&type=LIMIT&quantity=1.5&price=50000.0&timeInForce=GTC&timestamp=1700000000000"
	sig, _ := req.Params.Get("signature")
	if want := sign(testSecret, unsigned); sig != want {
		t.Fatalf("signature = %s, want %s", sig, want)
	}
	if sig != "3e0277d6075809d4a2311e0bdf2913a9949ab0487489b19ab44d6439ca5a79b1" {
		t.Fatalf("signature = %s, want literal", sig)
	}
	if got := req.Query(); got != unsigned+"&signature="+sig {
		t.Fatalf("Query() = %q", got)
	}
}

func TestBuildOrderRequestRejectsUnknownSide(t *testing.T) {
	s := newTestSigner(t)
	_, err := s.BuildOrderRequest("BTCUSDT", core.Side("HOLD"), decimal.NewFromInt(1), decimal.NewFromInt(1))
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("BuildOrderRequest(HOLD) error = %v, want ErrInvalidArgument", err)
	}
	if !strings.Contains(err.Error(), `"HOLD"`) {
		t.Fatalf("error = %q, want mention of HOLD", err.Error())
	}
}

func TestBuildOrderRequestReportsAllInvalidArguments(t *testing.T) {
	s := newTestSigner(t)
	_, err := s.BuildOrderRequest("", core.Sell, decimal.Zero, decimal.NewFromInt(-1))
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	for _, want := range []string{"symbol required", "quantity must be > 0", "price must be > 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error = %q, want contains %q", err.Error(), want)
		}
	}
}

func TestBuildBalanceRequest(t *testing.T) {
	s := newTestSigner(t)
	req, err := s.BuildBalanceRequest()
	if err != nil {
		t.Fatalf("BuildBalanceRequest() error = %v", err)
	}
	if req.Method != http.MethodGet || req.URL != DefaultBaseURL+"/account" {
		t.Fatalf("request = %s %s, want GET /account", req.Method, req.URL)
	}
	want := "timestamp=1700000000000&signature=f46ab3ba35e725ca68d5a9bcd2499ff88a48f3c14e899a8c047f7b6cf82b6adf"
	if got := req.Query(); got != want {
		t.Fatalf("Query() = %q, want %q", got, want)
	}
}

func TestBuildOrderStatusRequest(t *testing.T) {
	s := newTestSigner(t)
	req, err := s.BuildOrderStatusRequest("ETHUSDT", "12345")
	if err != nil {
		t.Fatalf("BuildOrderStatusRequest() error = %v", err)
	}
	if req.Method != http.MethodGet || req.URL != DefaultBaseURL+"/order" {
		t.Fatalf("request = %s %s, want GET /order", req.Method, req.URL)
	}
	wantKeys := []string{"symbol", "orderId", "timestamp", "signature"}
	if got := req.Params.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}
	sig, _ := req.Params.Get("signature")
	if sig != "d97ba651a9a9768a322ef9a81e91b5b1fa6c15f219e82a501d3ec0f29ffd29eb" {
		t.Fatalf("signature = %s, want literal", sig)
	}
}

func TestBuildOrderStatusRequestRequiresOrderID(t *testing.T) {
	s := newTestSigner(t)
	if _, err := s.BuildOrderStatusRequest("ETHUSDT", ""); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestHTTPRequestSendsSignedQueryVerbatim(t *testing.T) {
	s := newTestSigner(t)
	sr, err := s.BuildOrderStatusRequest("ETHUSDT", "12345")
	if err != nil {
		t.Fatalf("BuildOrderStatusRequest() error = %v", err)
	}
	req, err := sr.HTTPRequest(context.Background())
	if err != nil {
		t.Fatalf("HTTPRequest() error = %v", err)
	}
	if req.URL.RawQuery != sr.Query() {
		t.Fatalf("RawQuery = %q, want %q", req.URL.RawQuery, sr.Query())
	}
	if req.Header.Get("X-MBX-APIKEY") != "k" {
		t.Fatalf("api key header missing")
	}
}

func TestHTTPRequestRejectsQueryThatCannotBeSentVerbatim(t *testing.T) {
	s := newTestSigner(t)
	for _, symbol := range []string{"ETH#USDT", "ETH USDT", "ETH\nUSDT"} {
		sr, err := s.BuildOrderStatusRequest(symbol, "12345")
		if err != nil {
			t.Fatalf("BuildOrderStatusRequest(%q) error = %v", symbol, err)
		}
		if _, err := sr.HTTPRequest(context.Background()); !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("HTTPRequest(%q) error = %v, want ErrInvalidArgument", symbol, err)
		}
	}
}

func TestFormatDecimalKeepsScale(t *testing.T) {
	cases := map[string]string{
		"50000.0": "50000.0",
		"1.5":     "1.5",
		"0.010":   "0.010",
		"100":     "100",
	}
	for in, want := range cases {
		if got := formatDecimal(decimal.RequireFromString(in)); got != want {
			t.Fatalf("formatDecimal(%s) = %q, want %q", in, got, want)
		}
	}
}
