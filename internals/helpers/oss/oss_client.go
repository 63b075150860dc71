package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

var ErrOSSNotConfigured = errors.New("ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET belum diset")

// Config: kredensial bucket untuk salinan backup off-site
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
}

func ConfigFromEnv() Config {
	return Config{
		Endpoint:      getEnv("ALI_OSS_ENDPOINT"),
		AccessKey:     getEnv("ALI_OSS_ACCESS_KEY"),
		SecretKey:     getEnv("ALI_OSS_SECRET_KEY"),
		SecurityToken: getEnv("ALI_OSS_SECURITY_TOKEN"),
		Bucket:        getEnv("ALI_OSS_BUCKET"),
	}
}

func (c Config) Complete() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

func OSSConfigured() bool { return ConfigFromEnv().Complete() }

// Uploader backup: semua object di bawah Prefix, selalu private
type OSSService struct {
	Bucket *oss.Bucket
	Name   string
	Prefix string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	return NewOSSService(ConfigFromEnv(), prefix)
}

func NewOSSService(cfg Config, prefix string) (*OSSService, error) {
	if !cfg.Complete() {
		return nil, ErrOSSNotConfigured
	}
	var opts []oss.ClientOption
	if cfg.SecurityToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.SecurityToken))
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	// bucket policy sering cuma izinkan PutObject, AccessDenied di sini bukan fatal
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		var se oss.ServiceError
		if !errors.As(err, &se) || se.Code != "AccessDenied" {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
		log.Printf("[OSS] warn: location check AccessDenied (bucket=%s), lanjut", cfg.Bucket)
	} else {
		log.Printf("[OSS] bucket %s location: %s", cfg.Bucket, loc)
	}

	return &OSSService{Bucket: bkt, Name: cfg.Bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

func (s *OSSService) ObjectKey(name string) string {
	if s.Prefix == "" {
		return name
	}
	return s.Prefix + "/" + name
}

// UploadBytes: PutObject sebagai attachment; nama yang sama menimpa object lama
func (s *OSSService) UploadBytes(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty object name")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s.ObjectKey(name)
	err := s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition(fmt.Sprintf("attachment; filename=%q", name)),
		oss.ObjectACL(oss.ACLPrivate),
	)
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", s.Name, key, err)
	}
	return key, nil
}
