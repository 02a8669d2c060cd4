package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"binance-spot/internal/core"
)

const (
	DefaultBaseURL = "https://api.binance.com/api/v3"

	headerAPIKey   = "X-MBX-APIKEY"
	paramTimestamp = "timestamp"
	paramSignature = "signature"
)

var errAlreadySigned = errors.New("params already signed")

// Credentials is an immutable API key/secret pair. The secret is only used as
// the HMAC key and has no exported accessor.
type Credentials struct {
	apiKey    string
	apiSecret string
}

func NewCredentials(apiKey, apiSecret string) (Credentials, error) {
	if strings.TrimSpace(apiKey) == "" {
		return Credentials{}, fmt.Errorf("%w: api_key required", core.ErrConfiguration)
	}
	if strings.TrimSpace(apiSecret) == "" {
		return Credentials{}, fmt.Errorf("%w: api_secret required", core.ErrConfiguration)
	}
	return Credentials{apiKey: apiKey, apiSecret: apiSecret}, nil
}

func (c Credentials) APIKey() string { return c.apiKey }

func (c Credentials) empty() bool {
	return c.apiKey == "" || c.apiSecret == ""
}

// ComputeSignature returns the lowercase hex HMAC-SHA256 of params.Encode()
// keyed by secret. Empty params sign the empty message.
func ComputeSignature(secret string, params *Params) string {
	return sign(secret, params.Encode())
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

type SignerOptions struct {
	BaseURL string
	Clock   func() time.Time
}

// Signer assembles authenticated request descriptions. It holds no mutable
// state and is safe for concurrent use.
type Signer struct {
	creds   Credentials
	baseURL string
	now     func() time.Time
}

func NewSigner(creds Credentials, opts SignerOptions) (*Signer, error) {
	if creds.empty() {
		return nil, fmt.Errorf("%w: api_key/api_secret required", core.ErrConfiguration)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Signer{creds: creds, baseURL: baseURL, now: clock}, nil
}

func (s *Signer) BaseURL() string { return s.baseURL }

func (s *Signer) timestamp() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10)
}

// signed appends the signature to params and wraps them into a request.
func (s *Signer) signed(method, path string, params *Params) (SignedRequest, error) {
	if params.Has(paramSignature) {
		return SignedRequest{}, errAlreadySigned
	}
	params.Set(paramSignature, ComputeSignature(s.creds.apiSecret, params))
	header := http.Header{}
	header.Set(headerAPIKey, s.creds.apiKey)
	return SignedRequest{
		Method: method,
		URL:    s.baseURL + path,
		Params: params,
		Header: header,
	}, nil
}
