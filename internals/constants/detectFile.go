package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileImage   FileKind = 1
	FilePDF     FileKind = 2
	FileXLSX    FileKind = 3
	FileUnknown FileKind = 99
)

func DetectFileTypeFromExt(filename string) FileKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileImage
	case ".pdf":
		return FilePDF
	case ".xlsx", ".xlsm":
		return FileXLSX
	default:
		return FileUnknown
	}
}
