package resolver

import (
	"context"
	"fmt"
	"os/exec"
)

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// toolStrategy shells out to an external resolution tool and scrapes the
// first IPv4 address from its textual output. Any tool failure, including
// output that carries no address, is the same negative outcome. The
// subprocess is waited on before Resolve returns.
type toolStrategy struct {
	tool string
	args []string
	run  runFunc
}

func newNslookupStrategy() *toolStrategy {
	return &toolStrategy{tool: "nslookup", run: runCommand}
}

func newDigStrategy() *toolStrategy {
	return &toolStrategy{tool: "dig", args: []string{"+short"}, run: runCommand}
}

func (s *toolStrategy) Name() string { return s.tool }

func (s *toolStrategy) Resolve(ctx context.Context, hostname string) (string, error) {
	args := append(append([]string{}, s.args...), hostname)
	out, err := s.run(ctx, s.tool, args...)
	if err != nil {
		return "", err
	}
	ip, ok := FirstIPv4(string(out))
	if !ok {
		return "", fmt.Errorf("no IPv4 address in %s output", s.tool)
	}
	return ip, nil
}
