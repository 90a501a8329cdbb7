package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DiscoveryPort is the Alpaca discovery UDP port.
	DiscoveryPort    = 32227
	discoveryMessage = "alpacadiscovery1"
	discoveryWindow  = 2 * time.Second
)

// Discovery answers ASCOM Alpaca UDP discovery broadcasts with the API port.
//
// Clients such as NINA send a discovery packet from every local interface at
// once, which can cause duplicate listings. Discovery therefore only answers
// loopback packets and packets from the /24 subnet of the machine's primary
// LAN address, and answers each source IP at most once per two seconds.
type Discovery struct {
	reply  []byte
	lanIP  string
	logger *zap.Logger

	mu     sync.Mutex
	recent map[string]time.Time
}

// NewDiscovery returns a responder advertising apiPort.
func NewDiscovery(apiPort int, logger *zap.Logger) *Discovery {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("discovery")
	reply, _ := json.Marshal(struct {
		AlpacaPort int `json:"AlpacaPort"`
	}{apiPort})
	return &Discovery{
		reply:  reply,
		lanIP:  outboundIP(logger),
		logger: logger,
		recent: make(map[string]time.Time),
	}
}

// Serve listens on listenPort until ctx is cancelled.
func (d *Discovery) Serve(ctx context.Context, listenPort int) error {
	addr := fmt.Sprintf("0.0.0.0:%d", listenPort)
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return fmt.Errorf("discovery listener failed to bind on %s: %w", addr, err)
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	d.logger.Info("discovery listener bound", zap.String("addr", addr), zap.String("lan_ip", d.lanIP))
	buf := make([]byte, 1024)
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			d.logger.Warn("discovery read error", zap.Error(err))
			continue
		}
		reply, ok := d.respond(buf[:n], src, time.Now())
		if !ok {
			continue
		}
		if _, err := conn.WriteTo(reply, src); err != nil {
			d.logger.Warn("discovery response error", zap.Stringer("to", src), zap.Error(err))
		}
	}
}

// respond decides whether a packet from src gets a reply.
func (d *Discovery) respond(msg []byte, src net.Addr, now time.Time) ([]byte, bool) {
	if !strings.HasPrefix(strings.TrimSpace(string(msg)), discoveryMessage) {
		return nil, false
	}
	srcUDP, ok := src.(*net.UDPAddr)
	if !ok {
		return nil, false
	}
	srcIP := srcUDP.IP.String()
	if !isLoopbackIP(srcUDP.IP) && !sameSubnet24(srcIP, d.lanIP) {
		d.logger.Debug("ignoring discovery packet off the LAN subnet",
			zap.String("from", srcIP), zap.String("lan_ip", d.lanIP))
		return nil, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if last, seen := d.recent[srcIP]; seen && now.Sub(last) < discoveryWindow {
		return nil, false
	}
	d.recent[srcIP] = now
	for ip, t := range d.recent {
		if now.Sub(t) >= discoveryWindow {
			delete(d.recent, ip)
		}
	}
	d.logger.Debug("answering discovery", zap.Stringer("from", src))
	return d.reply, true
}

// sameSubnet24 returns true if ip and ref share the same first three octets.
func sameSubnet24(ip, ref string) bool {
	a := net.ParseIP(ip).To4()
	b := net.ParseIP(ref).To4()
	if a == nil || b == nil {
		return false
	}
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

func isLoopbackIP(ip net.IP) bool {
	return ip != nil && ip.IsLoopback()
}

// outboundIP returns the IP of the interface used for outbound traffic.
func outboundIP(logger *zap.Logger) string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		logger.Warn("could not determine local IP, falling back to 0.0.0.0", zap.Error(err))
		return "0.0.0.0"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
