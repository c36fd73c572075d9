package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"AIRESCAPE_BACK-END/internal/config"
)

type fakeGateway struct {
	tokenCalls atomic.Int32
	tokenCode  int
	pushStatus int
	pushBody   string

	mu       sync.Mutex
	lastPush stkPushRequest
	lastAuth string
}

func (g *fakeGateway) last() (stkPushRequest, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastPush, g.lastAuth
}

func (g *fakeGateway) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
			t.Errorf("token request without expected basic auth")
		}
		if g.tokenCode != 0 {
			w.WriteHeader(g.tokenCode)
			w.Write([]byte(`{"errorMessage":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"access_token":"tok-123","expires_in":"3599"}`))
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		var push stkPushRequest
		if err := json.NewDecoder(r.Body).Decode(&push); err != nil {
			t.Errorf("decode push: %v", err)
		}
		g.mu.Lock()
		g.lastPush, g.lastAuth = push, r.Header.Get("Authorization")
		g.mu.Unlock()
		status := g.pushStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		w.Write([]byte(g.pushBody))
	})
	return mux
}

func testConfig(baseURL string) config.PaymentConfig {
	return config.PaymentConfig{
		BaseURL:          baseURL,
		ConsumerKey:      "key",
		ConsumerSecret:   "secret",
		ShortCode:        "174379",
		Passkey:          "pass",
		CallbackURL:      "https://example.com/callback",
		AccountReference: "AirEscape",
		TransactionDesc:  "test",
		RequestTimeout:   5 * time.Second,
	}
}

const okBody = `{"MerchantRequestID":"m-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success"}`

func TestSTKPushSuccessCachesToken(t *testing.T) {
	g := &fakeGateway{pushBody: okBody}
	srv := httptest.NewServer(g.handler(t))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), srv.Client())
	c.now = func() time.Time { return time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC) }

	for i := 0; i < 2; i++ {
		res, err := c.STKPush(context.Background(), "0712345678", 150)
		if err != nil {
			t.Fatalf("STKPush: %v", err)
		}
		if res.CheckoutRequestID != "ws_CO_1" {
			t.Errorf("checkout id = %q", res.CheckoutRequestID)
		}
	}

	if n := g.tokenCalls.Load(); n != 1 {
		t.Errorf("token fetched %d times, want 1", n)
	}
	push, auth := g.last()
	if auth != "Bearer tok-123" {
		t.Errorf("authorization = %q", auth)
	}
	if push.PhoneNumber != "254712345678" || push.PartyA != "254712345678" {
		t.Errorf("phone = %q / %q", push.PhoneNumber, push.PartyA)
	}
	wantPassword := base64.StdEncoding.EncodeToString([]byte("174379" + "pass" + "20240815103000"))
	if push.Password != wantPassword || push.Timestamp != "20240815103000" {
		t.Errorf("password/timestamp = %q / %q", push.Password, push.Timestamp)
	}
	if push.Amount != 150 || push.TransactionType != transactionType {
		t.Errorf("push = %+v", push)
	}
}

func TestSTKPushFailureKinds(t *testing.T) {
	tests := []struct {
		name string
		g    *fakeGateway
		want Kind
	}{
		{"token rejected", &fakeGateway{tokenCode: http.StatusBadRequest}, KindAuth},
		{"push unauthorized", &fakeGateway{pushStatus: http.StatusUnauthorized, pushBody: `{}`}, KindAuth},
		{"push rejected", &fakeGateway{pushStatus: http.StatusBadRequest, pushBody: `{"requestId":"r","errorCode":"400.002.02","errorMessage":"Bad Request - Invalid Amount"}`}, KindRejected},
		{"non-zero response code", &fakeGateway{pushBody: `{"CheckoutRequestID":"x","ResponseCode":"1","ResponseDescription":"nope"}`}, KindRejected},
		{"garbage body", &fakeGateway{pushBody: `<html>oops</html>`}, KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.g.handler(t))
			defer srv.Close()

			_, err := NewClient(testConfig(srv.URL), srv.Client()).STKPush(context.Background(), "254712345678", 10)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if perr.Kind != tt.want {
				t.Errorf("kind = %s, want %s (%v)", perr.Kind, tt.want, perr)
			}
		})
	}
}

func TestSTKPushNetworkFailure(t *testing.T) {
	g := &fakeGateway{pushBody: okBody}
	srv := httptest.NewServer(g.handler(t))
	c := NewClient(testConfig(srv.URL), srv.Client())
	if _, err := c.STKPush(context.Background(), "254712345678", 10); err != nil {
		t.Fatalf("warm-up: %v", err)
	}
	srv.Close()

	_, err := c.STKPush(context.Background(), "254712345678", 10)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindNetwork {
		t.Fatalf("err = %v, want network failure", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0712345678", "254712345678", true},
		{"+254712345678", "254712345678", true},
		{"254712345678", "254712345678", true},
		{"712345678", "254712345678", true},
		{"0112 345 678", "254112345678", true},
		{"071234567", "", false},
		{"255712345678", "", false},
		{"phone", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, %v", tt.in, got, err)
		}
	}
}
