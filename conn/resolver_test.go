package conn

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	srv      map[string]*net.SRV
	hosts    map[string][]string
	srvCalls int
}

func (f *fakeResolver) LookupSRV(_ context.Context, service, proto, name string) (string, []*net.SRV, error) {
	f.srvCalls++
	if service != "minecraft" || proto != "tcp" {
		return "", nil, &net.DNSError{Err: "bad service", Name: name}
	}
	if rec, ok := f.srv[name]; ok {
		return "_minecraft._tcp." + name, []*net.SRV{rec}, nil
	}
	return "", nil, &net.DNSError{Err: "no such host", Name: name, IsNotFound: true}
}

func (f *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if addrs, ok := f.hosts[host]; ok {
		return addrs, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		srv: map[string]*net.SRV{
			"example.org": {Target: "mc.example.org.", Port: 25570},
		},
		hosts: map[string][]string{
			"example.org":    {"203.0.113.1"},
			"mc.example.org": {"203.0.113.7", "203.0.113.8"},
			"plain.example":  {"198.51.100.4"},
			"empty.example":  {},
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		address string
		want    Address
		srv     int
	}{
		{"127.0.0.1", Address{Host: "127.0.0.1", Port: 25565, IP: "127.0.0.1"}, 0},
		{"127.0.0.1:25566", Address{Host: "127.0.0.1", Port: 25566, IP: "127.0.0.1"}, 0},
		{"[::1]", Address{Host: "::1", Port: 25565, IP: "::1"}, 0},
		{"example.org", Address{Host: "mc.example.org", Port: 25570, IP: "203.0.113.7"}, 1},
		{"example.org:25565", Address{Host: "example.org", Port: 25565, IP: "203.0.113.1"}, 0},
		{"plain.example", Address{Host: "plain.example", Port: 25565, IP: "198.51.100.4"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			r := newFakeResolver()
			got, err := Resolve(context.Background(), r, tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.srv, r.srvCalls)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	for _, address := range []string{"", "missing.example", "empty.example", "host:99999", "host:port"} {
		t.Run(address, func(t *testing.T) {
			_, err := Resolve(context.Background(), newFakeResolver(), address)
			assert.ErrorIs(t, err, ErrResolve)
			var cerr *ConnectionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "resolve", cerr.Op)
		})
	}
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "203.0.113.7:25570", Address{IP: "203.0.113.7", Port: 25570}.String())
	assert.Equal(t, "[::1]:25565", Address{IP: "::1", Port: 25565}.String())
}
