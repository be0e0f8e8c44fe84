package nets

import (
	"context"
	"net"
	"strings"
)

// IsLocalAddr reports whether addr resolves to a loopback or private
// address. Those are dialed directly, never through the proxy.
type IsLocalAddr func(ctx context.Context, addr string) (bool, error)

func (Module) IsLocalAddr() IsLocalAddr {
	return func(ctx context.Context, addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			// no port
			host = addr
		}
		host = strings.Trim(host, "[]")

		if strings.EqualFold(host, "localhost") {
			return true, nil
		}
		if ip := net.ParseIP(host); ip != nil {
			return isLocalIP(ip), nil
		}

		addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			// unresolvable hosts go through the proxy
			return false, nil
		}
		for _, addr := range addrs {
			if isLocalIP(addr.IP) {
				return true, nil
			}
		}
		return false, nil
	}
}

func isLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate()
}
