package resolver

import (
	"context"
	"fmt"
	"net"
)

// systemStrategy asks the platform's own resolver machinery, the cheapest
// and most common path. "Not found" and transport errors are not
// distinguished; either way the chain moves on.
type systemStrategy struct {
	resolver *net.Resolver
}

func newSystemStrategy() *systemStrategy {
	return &systemStrategy{resolver: net.DefaultResolver}
}

func (s *systemStrategy) Name() string { return "system" }

func (s *systemStrategy) Resolve(ctx context.Context, hostname string) (string, error) {
	ips, err := s.resolver.LookupIP(ctx, "ip4", hostname)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no IPv4 address for %s", hostname)
	}
	return ips[0].String(), nil
}
