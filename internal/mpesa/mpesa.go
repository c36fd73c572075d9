// Package mpesa is a client for the Safaricom Daraja STK push (Lipa na M-Pesa Online) API.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"AIRESCAPE_BACK-END/internal/config"
)

const (
	tokenPath          = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath        = "/mpesa/stkpush/v1/processrequest"
	timestampLayout    = "20060102150405"
	transactionType    = "CustomerPayBillOnline"
	maxErrorBodyLength = 512
)

// Kind classifies why a payment request failed
type Kind string

const (
	KindNetwork   Kind = "network"
	KindAuth      Kind = "auth"
	KindRejected  Kind = "rejected"
	KindMalformed Kind = "malformed"
)

// Error is returned for every failed gateway call
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mpesa %s failure: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidPhone is returned when a phone number cannot be normalized to 2547XXXXXXXX / 2541XXXXXXXX
var ErrInvalidPhone = errors.New("phone must be a Kenyan mobile number")

var kenyanMobile = regexp.MustCompile(`^254[17]\d{8}$`)

// NormalizePhone converts 07XXXXXXXX, +2547XXXXXXXX, 7XXXXXXXX and similar forms to 2547XXXXXXXX
func NormalizePhone(phone string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	p = strings.TrimPrefix(p, "+")
	switch {
	case strings.HasPrefix(p, "0") && len(p) == 10:
		p = "254" + p[1:]
	case (strings.HasPrefix(p, "7") || strings.HasPrefix(p, "1")) && len(p) == 9:
		p = "254" + p
	}
	if !kenyanMobile.MatchString(p) {
		return "", ErrInvalidPhone
	}
	return p, nil
}

// STKPushResult is the gateway acknowledgement of a push request
type STKPushResult struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int    `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type gatewayError struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Client sends STK push requests. The OAuth2 access token is cached until it expires.
type Client struct {
	cfg  config.PaymentConfig
	http *http.Client
	now  func() time.Time
}

// NewClient creates a client for cfg. base is used for both the token and the API calls;
// nil means a plain client with cfg.RequestTimeout.
func NewClient(cfg config.PaymentConfig, base *http.Client) *Client {
	if base == nil {
		base = &http.Client{Timeout: cfg.RequestTimeout}
	}
	src := oauth2.ReuseTokenSource(nil, &tokenSource{cfg: cfg, http: base})
	authed := &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: base.Transport},
		Timeout:   base.Timeout,
	}
	return &Client{cfg: cfg, http: authed, now: time.Now}
}

// STKPush asks the gateway to prompt phone for amount
func (c *Client) STKPush(ctx context.Context, phone string, amount int) (*STKPushResult, error) {
	msisdn, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", amount)
	}

	ts := c.now().Format(timestampLayout)
	body, err := json.Marshal(stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          base64.StdEncoding.EncodeToString([]byte(c.cfg.ShortCode + c.cfg.Passkey + ts)),
		Timestamp:         ts,
		TransactionType:   transactionType,
		Amount:            amount,
		PartyA:            msisdn,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       msisdn,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  c.cfg.AccountReference,
		TransactionDesc:   c.cfg.TransactionDesc,
	})
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var terr *tokenError
		if errors.As(err, &terr) {
			return nil, &Error{Kind: KindAuth, Err: err}
		}
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &Error{Kind: KindAuth, Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw))}
	}
	if resp.StatusCode != http.StatusOK {
		var gerr gatewayError
		if json.Unmarshal(raw, &gerr) == nil && gerr.ErrorCode != "" {
			return nil, &Error{Kind: KindRejected, Err: fmt.Errorf("status %d: %s %s", resp.StatusCode, gerr.ErrorCode, gerr.ErrorMessage)}
		}
		return nil, &Error{Kind: KindRejected, Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw))}
	}

	var result STKPushResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &Error{Kind: KindMalformed, Err: fmt.Errorf("decode response: %w", err)}
	}
	if result.CheckoutRequestID == "" {
		return nil, &Error{Kind: KindMalformed, Err: errors.New("response has no CheckoutRequestID")}
	}
	if result.ResponseCode != "0" {
		return nil, &Error{Kind: KindRejected, Err: fmt.Errorf("response code %s: %s", result.ResponseCode, result.ResponseDescription)}
	}
	return &result, nil
}

// tokenError marks failures to obtain an access token
type tokenError struct {
	err error
}

func (e *tokenError) Error() string { return "fetch access token: " + e.err.Error() }
func (e *tokenError) Unwrap() error { return e.err }

// tokenSource implements the Daraja client-credentials exchange, which uses GET with basic auth
// and returns expires_in as a string.
type tokenSource struct {
	cfg  config.PaymentConfig
	http *http.Client

	mu sync.Mutex
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ConsumerKey == "" || s.cfg.ConsumerSecret == "" {
		return nil, &tokenError{err: errors.New("consumer credentials not configured")}
	}

	req, err := http.NewRequest(http.MethodGet, strings.TrimRight(s.cfg.BaseURL, "/")+tokenPath, nil)
	if err != nil {
		return nil, &tokenError{err: err}
	}
	req.SetBasicAuth(s.cfg.ConsumerKey, s.cfg.ConsumerSecret)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &tokenError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, &tokenError{err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &tokenError{err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw))}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   string `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.AccessToken == "" {
		return nil, &tokenError{err: fmt.Errorf("malformed token response: %s", truncate(raw))}
	}

	tok := &oauth2.Token{AccessToken: payload.AccessToken, TokenType: "Bearer"}
	if secs, err := strconv.Atoi(payload.ExpiresIn); err == nil && secs > 0 {
		tok.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return tok, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBodyLength {
		b = b[:maxErrorBodyLength]
	}
	return strings.TrimSpace(string(b))
}
