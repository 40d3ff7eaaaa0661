package clientaddr

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		forwardedFor string
		remoteAddr   string
		want         string
	}{
		{
			name:         "forwarded header takes first element",
			forwardedFor: "a, b, c",
			remoteAddr:   "192.168.1.1",
			want:         "a",
		},
		{
			name:         "single value trimmed of surrounding spaces",
			forwardedFor: " 10.0.0.5 ",
			remoteAddr:   "192.168.1.1",
			want:         "10.0.0.5",
		},
		{
			name:         "no forwarded header falls back to peer",
			forwardedFor: "",
			remoteAddr:   "192.168.1.1",
			want:         "192.168.1.1",
		},
		{
			name:         "neither input returns sentinel",
			forwardedFor: "",
			remoteAddr:   "",
			want:         "unknown",
		},
		{
			name:         "forwarded header wins over peer",
			forwardedFor: "203.0.113.7",
			remoteAddr:   "10.0.0.1",
			want:         "203.0.113.7",
		},
		{
			name:         "malformed forwarded value is trusted verbatim",
			forwardedFor: "not-an-ip, 10.0.0.2",
			remoteAddr:   "10.0.0.1",
			want:         "not-an-ip",
		},
		{
			name:         "blank first hop trims to empty",
			forwardedFor: " , 10.0.0.2",
			remoteAddr:   "10.0.0.1",
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Resolve(tt.forwardedFor, tt.remoteAddr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	first := Resolve("a, b", "10.0.0.1")
	second := Resolve("a, b", "10.0.0.1")
	assert.Equal(t, first, second)
}

func TestFromRequest_StripsPort(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ip", nil)
	req.RemoteAddr = "192.168.1.1:54321"

	assert.Equal(t, "192.168.1.1", FromRequest(req))
}

func TestFromRequest_ForwardedHeaderWins(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ip", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	req.Header.Set(ForwardedForHeader, "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", FromRequest(req))
}

func TestFromRequest_WeirdRemoteAddrKeptRaw(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ip", nil)
	req.RemoteAddr = "@"

	assert.Equal(t, "@", FromRequest(req))
}

func TestFromRequest_NoInputs(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ip", nil)
	req.RemoteAddr = ""

	assert.Equal(t, Unknown, FromRequest(req))
}
