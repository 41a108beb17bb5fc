package viewer

import (
	"net/http"
	"testing"

	"github.com/lawnchairsociety/towergen/internal/config"
)

func TestConnLimiter_PerIPLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{
		MaxPerIP: 2,
		MaxTotal: 100,
	})

	if !limiter.TryAcquire("192.168.1.1") {
		t.Error("first connection should be allowed")
	}
	if !limiter.TryAcquire("192.168.1.1") {
		t.Error("second connection should be allowed")
	}
	if limiter.TryAcquire("192.168.1.1") {
		t.Error("third connection from same IP should be rejected")
	}
	if !limiter.TryAcquire("192.168.1.2") {
		t.Error("connection from different IP should be allowed")
	}

	limiter.Release("192.168.1.1")
	if !limiter.TryAcquire("192.168.1.1") {
		t.Error("connection should be allowed after release")
	}
}

func TestConnLimiter_TotalLimit(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{
		MaxPerIP: 10,
		MaxTotal: 2,
	})

	if !limiter.TryAcquire("10.0.0.1") || !limiter.TryAcquire("10.0.0.2") {
		t.Fatal("first two connections should be allowed")
	}
	if limiter.TryAcquire("10.0.0.3") {
		t.Error("third connection should hit the total limit")
	}

	limiter.Release("10.0.0.1")
	if !limiter.TryAcquire("10.0.0.3") {
		t.Error("connection should be allowed after release")
	}
}

func TestConnLimiter_Unlimited(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{})
	for i := 0; i < 100; i++ {
		if !limiter.TryAcquire("10.0.0.1") {
			t.Fatalf("connection %d rejected with no limits", i)
		}
	}
}

func TestConnLimiter_Stats(t *testing.T) {
	limiter := NewConnLimiter(config.ConnectionsConfig{})
	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.1")
	limiter.TryAcquire("10.0.0.2")

	total, ips := limiter.Stats()
	if total != 3 || ips != 2 {
		t.Errorf("Stats() = %d, %d, want 3, 2", total, ips)
	}
	if got := limiter.IPCount("10.0.0.1"); got != 2 {
		t.Errorf("IPCount() = %d, want 2", got)
	}

	limiter.Release("10.0.0.1")
	limiter.Release("10.0.0.1")
	limiter.Release("10.0.0.1") // extra release must not go negative
	if got := limiter.IPCount("10.0.0.1"); got != 0 {
		t.Errorf("IPCount() after release = %d, want 0", got)
	}
	total, ips = limiter.Stats()
	if total != 1 || ips != 1 {
		t.Errorf("Stats() after release = %d, %d, want 1, 1", total, ips)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"192.168.1.1:12345", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"no-port", "no-port"},
	}
	for _, tt := range tests {
		if got := extractIP(tt.input); got != tt.want {
			t.Errorf("extractIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	conns := &config.ConnectionsConfig{TrustedProxies: []string{"10.0.0.1", "172.16.0.0/12"}}

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.5:4000", "10.0.0.5"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:4000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "10.0.0.1:4000", "198.51.100.2"},
		{"proxy range", map[string]string{"X-Real-IP": "198.51.100.3"}, "172.20.1.1:4000", "198.51.100.3"},
		{"empty forwarded", map[string]string{"X-Forwarded-For": " , 10.0.0.1"}, "10.0.0.1:4000", "10.0.0.1"},
		{"spoofed forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.0.2.50:4000", "192.0.2.50"},
		{"spoofed real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "192.0.2.50:4000", "192.0.2.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := clientIP(r, conns); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpoofedHeadersShareOneSlot(t *testing.T) {
	conns := config.ConnectionsConfig{MaxPerIP: 1}
	limiter := NewConnLimiter(conns)

	for i, fake := range []string{"203.0.113.1", "203.0.113.2"} {
		r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
		r.RemoteAddr = "192.0.2.50:4000"
		r.Header.Set("X-Forwarded-For", fake)

		got := limiter.TryAcquire(clientIP(r, &conns))
		if want := i == 0; got != want {
			t.Errorf("request %d: TryAcquire() = %v, want %v", i, got, want)
		}
	}
}
