package flagutil

import (
	"fmt"
	"net"

	"github.com/jessevdk/go-flags"
)

// HostPort is a listen address that has been checked to carry a port.
type HostPort string

var _ flags.Unmarshaler = (*HostPort)(nil)

// ParseHostPort checks s for a host:port pair with a non-empty port and
// returns it normalized, with IPv6 hosts in brackets.
func ParseHostPort(s string) (HostPort, error) {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return "", fmt.Errorf("invalid host:port %q: %w", s, err)
	}
	if port == "" {
		return "", fmt.Errorf("invalid host:port %q: missing port", s)
	}
	return HostPort(net.JoinHostPort(host, port)), nil
}

func (hp *HostPort) UnmarshalText(text []byte) error {
	parsed, err := ParseHostPort(string(text))
	if err != nil {
		return err
	}
	*hp = parsed
	return nil
}

func (hp *HostPort) UnmarshalFlag(value string) error {
	return hp.UnmarshalText([]byte(value))
}
