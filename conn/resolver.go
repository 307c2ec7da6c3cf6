package conn

import (
	"context"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is used when an address has no port and no SRV record.
const DefaultPort = 25565

// Resolver looks up server addresses. *net.Resolver implements it.
type Resolver interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NetResolver is the system resolver.
var NetResolver Resolver = net.DefaultResolver

// Address is a resolved server address.
type Address struct {
	// Host and Port are sent in the handshake. After an SRV lookup they are
	// the record's target.
	Host string
	Port uint16
	// IP is the address dialed.
	IP string
}

func (a Address) String() string {
	return net.JoinHostPort(a.IP, strconv.Itoa(int(a.Port)))
}

// Resolve turns "host", "host:port" or an IP literal into a dialable
// address. Without an explicit port the _minecraft._tcp SRV record of the
// host is consulted first.
func Resolve(ctx context.Context, r Resolver, address string) (Address, error) {
	if r == nil {
		r = NetResolver
	}
	fail := func(err error) (Address, error) {
		return Address{}, &ConnectionError{Op: "resolve", Addr: address, Kind: ErrResolve, Err: err}
	}

	host, port, explicit, err := splitAddress(address)
	if err != nil {
		return fail(err)
	}
	a := Address{Host: host, Port: port}

	if ip := net.ParseIP(host); ip != nil {
		a.IP = ip.String()
		return a, nil
	}
	if !explicit {
		if _, records, err := r.LookupSRV(ctx, "minecraft", "tcp", host); err == nil && len(records) > 0 {
			a.Host = strings.TrimSuffix(records[0].Target, ".")
			a.Port = records[0].Port
		}
	}
	if ip := net.ParseIP(a.Host); ip != nil {
		a.IP = ip.String()
		return a, nil
	}
	addrs, err := r.LookupHost(ctx, a.Host)
	if err != nil {
		return fail(err)
	}
	if len(addrs) == 0 {
		return fail(&net.DNSError{Err: "no addresses", Name: a.Host, IsNotFound: true})
	}
	a.IP = addrs[0]
	return a, nil
}

func splitAddress(address string) (host string, port uint16, explicit bool, err error) {
	if address == "" {
		return "", 0, false, &net.AddrError{Err: "empty address"}
	}
	h, p, err := net.SplitHostPort(address)
	if err != nil {
		// No port, or a bare IPv6 literal.
		return strings.Trim(address, "[]"), DefaultPort, false, nil
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, false, &net.AddrError{Err: "invalid port", Addr: address}
	}
	return h, uint16(n), true, nil
}
