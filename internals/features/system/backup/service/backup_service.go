// file: internals/features/system/backup/service/backup_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"

	"edugest_backend/internals/features/system/kvstore/repository"
	"edugest_backend/internals/state"
)

var ErrUploadFailed = errors.New("backup upload failed")

// Uploader: salinan off-site (OSS). nil = hanya simpan lokal.
type Uploader interface {
	UploadBytes(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type Service struct {
	Ctl      *state.Controller
	Store    repository.Store
	Uploader Uploader
}

func New(ctl *state.Controller, store repository.Store, up Uploader) *Service {
	return &Service{Ctl: ctl, Store: store, Uploader: up}
}

func FileName(exportDate time.Time) string {
	return fmt.Sprintf("edugest_full_backup_%s.json", exportDate.Format(state.DateLayout))
}

// Marshal: JSON berindentasi, sama dengan file download
func Marshal(b state.Backup) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(b, "", "  ")
}

func Unmarshal(data []byte) (state.Backup, error) {
	var b state.Backup
	if err := sonic.Unmarshal(data, &b); err != nil {
		return state.Backup{}, fmt.Errorf("%w: %v", state.ErrInvalidBackup, err)
	}
	return b, nil
}

type RunResult struct {
	FileName  string    `json:"fileName"`
	ObjectKey string    `json:"objectKey,omitempty"`
	Size      int       `json:"size"`
	At        time.Time `json:"at"`
}

// Run: export → simpan ke key auto_backup → upload (jika ada uploader).
// Gagal upload tidak membatalkan salinan lokal.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	b := s.Ctl.Export()
	data, err := Marshal(b)
	if err != nil {
		return RunResult{}, fmt.Errorf("marshal backup: %w", err)
	}
	res := RunResult{FileName: FileName(b.ExportDate), Size: len(data), At: b.ExportDate}

	if err := s.Store.Set(ctx, state.KeyAutoBackup, b); err != nil {
		return res, fmt.Errorf("store %s: %w", state.KeyAutoBackup, err)
	}
	if s.Uploader == nil {
		return res, nil
	}
	key, err := s.Uploader.UploadBytes(ctx, res.FileName, data, "application/json")
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	res.ObjectKey = key
	return res, nil
}

// Latest: backup otomatis terakhir
func (s *Service) Latest(ctx context.Context) (state.Backup, bool, error) {
	var b state.Backup
	ok, err := s.Store.Get(ctx, state.KeyAutoBackup, &b)
	if err != nil || !ok {
		return state.Backup{}, false, err
	}
	return b, true, nil
}

func (s *Service) logRun(ctx context.Context) {
	res, err := s.Run(ctx)
	if err != nil {
		log.Printf("[BACKUP ERROR] %v", err)
		return
	}
	if res.ObjectKey != "" {
		log.Printf("[BACKUP] %s (%d bytes) disimpan + upload %s", res.FileName, res.Size, res.ObjectKey)
		return
	}
	log.Printf("[BACKUP] %s (%d bytes) disimpan di %s", res.FileName, res.Size, state.KeyAutoBackup)
}
