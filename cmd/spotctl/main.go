package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"binance-spot/internal/config"
	"binance-spot/internal/core"
	"binance-spot/internal/exchange/binance"
)

const (
	opOrder   = "order"
	opBalance = "balance"
	opStatus  = "status"
)

type dryRun struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Query  string            `json:"query"`
	Header map[string]string `json:"header"`
}

type orderArgs struct {
	symbol   string
	side     core.Side
	quantity decimal.Decimal
	price    decimal.Decimal
}

func main() {
	var (
		configPath string
		op         string
		symbol     string
		side       string
		qty        string
		price      string
		orderID    string
		timeoutSec int
		dry        bool
	)
	flag.StringVar(&configPath, "config", "config/config.yaml", "config yaml path")
	flag.StringVar(&op, "op", opBalance, "operation: order | balance | status")
	flag.StringVar(&symbol, "symbol", "", "trading pair, e.g. BTCUSDT")
	flag.StringVar(&side, "side", "", "order side: BUY or SELL")
	flag.StringVar(&qty, "qty", "", "order quantity")
	flag.StringVar(&price, "price", "", "limit price")
	flag.StringVar(&orderID, "order-id", "", "order id for -op status")
	flag.IntVar(&timeoutSec, "timeout-sec", 30, "total timeout seconds")
	flag.BoolVar(&dry, "dry-run", false, "print the signed request without sending it")
	flag.Parse()

	if err := validateTimeout(timeoutSec); err != nil {
		fatal(err.Error())
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err.Error())
	}
	client, err := binance.NewClient(cfg.Exchange)
	if err != nil {
		fatal(err.Error())
	}

	var req binance.SignedRequest
	switch op {
	case opOrder:
		args, err := parseOrderArgs(symbol, side, qty, price)
		if err != nil {
			fatal(err.Error())
		}
		req, err = client.Signer().BuildOrderRequest(args.symbol, args.side, args.quantity, args.price)
		if err != nil {
			fatal(err.Error())
		}
	case opBalance:
		req, err = client.Signer().BuildBalanceRequest()
	case opStatus:
		req, err = client.Signer().BuildOrderStatusRequest(symbol, orderID)
	default:
		fatal(fmt.Sprintf("unknown op %q", op))
	}
	if err != nil {
		fatal(err.Error())
	}

	if dry {
		printJSON(describe(req))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
	defer cancel()

	log.Printf("level=INFO event=request_start op=%s method=%s url=%q", op, req.Method, req.URL)
	resp, err := client.Do(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fatal(err.Error())
	}
	log.Printf("level=INFO event=request_done op=%s", op)
	printJSON(resp)
}

func validateTimeout(sec int) error {
	if sec < 1 {
		return fmt.Errorf("%w: timeout-sec must be >= 1, got %d", core.ErrInvalidArgument, sec)
	}
	return nil
}

func parseOrderArgs(symbol, side, qty, price string) (orderArgs, error) {
	quantity, err := decimal.NewFromString(qty)
	if err != nil {
		return orderArgs{}, fmt.Errorf("%w: qty %q: %v", core.ErrInvalidArgument, qty, err)
	}
	limit, err := decimal.NewFromString(price)
	if err != nil {
		return orderArgs{}, fmt.Errorf("%w: price %q: %v", core.ErrInvalidArgument, price, err)
	}
	return orderArgs{
		symbol:   symbol,
		side:     core.ParseSide(side),
		quantity: quantity,
		price:    limit,
	}, nil
}

func describe(req binance.SignedRequest) dryRun {
	header := make(map[string]string, len(req.Header))
	for k := range req.Header {
		header[k] = maskKey(req.Header.Get(k))
	}
	return dryRun{
		Method: req.Method,
		URL:    req.URL,
		Query:  req.Query(),
		Header: header,
	}
}

// maskKey keeps the first and last four characters.
func maskKey(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return v[:4] + "****" + v[len(v)-4:]
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err.Error())
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
