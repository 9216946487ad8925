package resolver

import (
	"bufio"
	"net"
	"regexp"
	"strings"
)

var ipv4Candidate = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

// FirstIPv4 scans text line by line, in order, and returns the first
// dotted-decimal four-component token that is a valid IPv4 address.
// Candidates that do not parse (octets above 255, leading zeros) are skipped
// and the scan continues. Token matching only; the output grammar of any
// particular tool is never parsed.
func FirstIPv4(text string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		for _, candidate := range ipv4Candidate.FindAllString(scanner.Text(), -1) {
			if ip := net.ParseIP(candidate); ip != nil && ip.To4() != nil {
				return candidate, true
			}
		}
	}
	return "", false
}
