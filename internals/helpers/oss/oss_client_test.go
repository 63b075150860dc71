package helper

import (
	"errors"
	"testing"
)

func TestConfigComplete(t *testing.T) {
	cfg := Config{Endpoint: "oss-eu-central-1.aliyuncs.com", AccessKey: "ak", SecretKey: "sk"}
	if cfg.Complete() {
		t.Fatal("config without bucket must be incomplete")
	}
	if _, err := NewOSSService(cfg, "backups"); !errors.Is(err, ErrOSSNotConfigured) {
		t.Fatalf("err = %v", err)
	}
	cfg.Bucket = "edugest"
	if !cfg.Complete() {
		t.Fatal("config should be complete")
	}
}

func TestObjectKeyPrefix(t *testing.T) {
	s := &OSSService{Prefix: "backups"}
	if got := s.ObjectKey("a.json"); got != "backups/a.json" {
		t.Fatalf("got %q", got)
	}
	s.Prefix = ""
	if got := s.ObjectKey("a.json"); got != "a.json" {
		t.Fatalf("got %q", got)
	}
}
