package redis

import (
	"testing"
	"time"
)

func TestRevocationTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		until time.Time
		want  time.Duration
	}{
		{"remaining lifetime", now.Add(2 * time.Hour), 2 * time.Hour},
		{"nearly expired", now.Add(5 * time.Second), minRevocationTTL},
		{"already expired", now.Add(-time.Hour), minRevocationTTL},
		{"zero expiry", time.Time{}, minRevocationTTL},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := revocationTTL(now, tc.until); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRevocationKey(t *testing.T) {
	if got := revocationKey("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
