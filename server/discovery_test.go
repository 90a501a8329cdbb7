package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestDiscovery(lanIP string) *Discovery {
	return &Discovery{
		reply:  []byte(`{"AlpacaPort":11111}`),
		lanIP:  lanIP,
		logger: zap.NewNop(),
		recent: make(map[string]time.Time),
	}
}

func udp(ip string) *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(ip), Port: 40000}
}

func TestDiscoveryRespond(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		msg  string
		src  net.Addr
		want bool
	}{
		{"lan peer", "alpacadiscovery1", udp("192.168.1.20"), true},
		{"loopback", "alpacadiscovery1", udp("127.0.0.1"), true},
		{"padded message", "  alpacadiscovery1\n", udp("192.168.1.21"), true},
		{"other subnet", "alpacadiscovery1", udp("10.0.0.5"), false},
		{"wrong message", "hello", udp("192.168.1.22"), false},
		{"not udp", "alpacadiscovery1", &net.TCPAddr{IP: net.ParseIP("192.168.1.23")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDiscovery("192.168.1.10")
			reply, ok := d.respond([]byte(tt.msg), tt.src, now)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.JSONEq(t, `{"AlpacaPort":11111}`, string(reply))
			}
		})
	}
}

func TestDiscoveryDeduplicatesPerSource(t *testing.T) {
	d := newTestDiscovery("192.168.1.10")
	now := time.Now()
	src := udp("192.168.1.20")

	_, ok := d.respond([]byte("alpacadiscovery1"), src, now)
	assert.True(t, ok)
	_, ok = d.respond([]byte("alpacadiscovery1"), src, now.Add(time.Second))
	assert.False(t, ok)
	_, ok = d.respond([]byte("alpacadiscovery1"), udp("192.168.1.30"), now.Add(time.Second))
	assert.True(t, ok)
	_, ok = d.respond([]byte("alpacadiscovery1"), src, now.Add(2*time.Second))
	assert.True(t, ok)
}

func TestSameSubnet24(t *testing.T) {
	assert.True(t, sameSubnet24("192.168.1.20", "192.168.1.10"))
	assert.False(t, sameSubnet24("192.168.2.20", "192.168.1.10"))
	assert.False(t, sameSubnet24("not an ip", "192.168.1.10"))
	assert.False(t, sameSubnet24("::1", "192.168.1.10"))
}
