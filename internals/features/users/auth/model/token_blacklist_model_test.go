package model

import (
	"testing"
	"time"
)

func TestBlacklistPurge(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	bl := NewTokenBlacklist()
	bl.Add("old", now.Add(-time.Minute))
	bl.Add("fresh", now.Add(time.Hour))

	if !bl.Contains("old") || !bl.Contains("fresh") {
		t.Fatal("both tokens should be blacklisted before purge")
	}
	if n := bl.Purge(now); n != 1 {
		t.Fatalf("purged %d, want 1", n)
	}
	if bl.Contains("old") {
		t.Fatal("expired entry still present")
	}
	if !bl.Contains("fresh") || bl.Len() != 1 {
		t.Fatalf("fresh entry lost, len=%d", bl.Len())
	}
}
