package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			if !rl.Allow("1.2.3.4") {
				t.Fatalf("request %d should be allowed", i+1)
			}
		}
		if rl.Allow("1.2.3.4") {
			t.Error("request past the limit should be blocked")
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)
		if !rl.Allow("1.2.3.4") {
			t.Fatal("first client should be allowed")
		}
		if !rl.Allow("5.6.7.8") {
			t.Error("second client should have its own window")
		}
	})

	t.Run("window expiry resets the budget", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)
		if !rl.Allow("1.2.3.4") {
			t.Fatal("first request should be allowed")
		}
		if rl.Allow("1.2.3.4") {
			t.Fatal("second request should be blocked")
		}
		time.Sleep(20 * time.Millisecond)
		if !rl.Allow("1.2.3.4") {
			t.Error("request after the window should be allowed again")
		}
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded header wins", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "127.0.0.1:1234", "10.0.0.1"},
		{"real ip second", map[string]string{"X-Real-IP": "10.0.0.2"}, "127.0.0.1:1234", "10.0.0.2"},
		{"remote addr fallback", nil, "127.0.0.1:1234", "127.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
