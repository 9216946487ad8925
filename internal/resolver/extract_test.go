package resolver

import "testing"

func TestFirstIPv4(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "dig short answer",
			input: "93.184.216.34\n",
			want:  "93.184.216.34",
			ok:    true,
		},
		{
			name:  "dig short with cname first",
			input: "example.map.fastly.net.\n151.101.1.140\n",
			want:  "151.101.1.140",
			ok:    true,
		},
		{
			// The resolver's own address precedes the answer in nslookup
			// output and the scan takes the first valid token it sees.
			name:  "nslookup takes first address in output",
			input: "Server:  router.local\r\nAddress:  192.168.1.1\r\n\r\nName:    example.com\r\nAddress:  93.184.216.34\r\n",
			want:  "192.168.1.1",
			ok:    true,
		},
		{
			name:  "invalid octet skipped, scan continues",
			input: "Addresses: 300.1.2.3 10.0.0.7\n",
			want:  "10.0.0.7",
			ok:    true,
		},
		{
			name:  "invalid line skipped, next line wins",
			input: "999.999.999.999\n198.51.100.7\n203.0.113.9\n",
			want:  "198.51.100.7",
			ok:    true,
		},
		{
			name:  "leading zeros rejected",
			input: "192.168.01.5\n",
			want:  "",
			ok:    false,
		},
		{
			name:  "overlong octet rejected",
			input: "version 1.2.3.400\n",
			want:  "",
			ok:    false,
		},
		{
			name:  "digits glued to a word are not a token",
			input: "v1.2.3.4\n",
			want:  "",
			ok:    false,
		},
		{
			name:  "ipv6 only",
			input: "2606:2800:220:1:248:1893:25c8:1946\n",
			want:  "",
			ok:    false,
		},
		{
			name:  "no addresses at all",
			input: ";; connection timed out; no servers could be reached\n",
			want:  "",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstIPv4(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FirstIPv4(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
