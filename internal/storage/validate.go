package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// FileInfo describes one file of an upload batch before any bytes are
// transferred.
type FileInfo struct {
	Name string
	Size int64
}

// ValidateBatch checks a whole upload batch against the configured
// limits. One invalid file rejects the entire batch; nothing is
// uploaded in that case.
func ValidateBatch(files []FileInfo, cfg *config.UploadConfig) error {
	details := make(map[string]string)

	if len(files) == 0 {
		details["files"] = "no files provided"
		return errors.Validation(details)
	}
	if cfg.MaxFilesPerBatch > 0 && len(files) > cfg.MaxFilesPerBatch {
		details["files"] = fmt.Sprintf("batch contains %d files, maximum is %d", len(files), cfg.MaxFilesPerBatch)
		return errors.Validation(details)
	}

	for _, f := range files {
		if f.Name == "" {
			details["files"] = "file without a name"
			continue
		}
		ext := strings.ToLower(path.Ext(f.Name))
		if !allowedExtension(ext, cfg.AllowedTypes) {
			details[f.Name] = fmt.Sprintf("file type %q is not allowed", ext)
			continue
		}
		if cfg.MaxFileSizeBytes > 0 && f.Size > cfg.MaxFileSizeBytes {
			details[f.Name] = fmt.Sprintf("file size %d exceeds limit of %d bytes", f.Size, cfg.MaxFileSizeBytes)
		}
	}

	if len(details) > 0 {
		return errors.Validation(details)
	}
	return nil
}

func allowedExtension(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}
