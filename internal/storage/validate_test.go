package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prozessdok/prozessdok-backend/pkg/config"
	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

func uploadConfig() *config.UploadConfig {
	return &config.UploadConfig{
		MaxFileSizeBytes: 1024,
		MaxFilesPerBatch: 3,
		AllowedTypes:     []string{".pdf", ".png", ".bpmn"},
	}
}

func TestValidateBatch_AcceptsValidFiles(t *testing.T) {
	files := []FileInfo{
		{Name: "lastenheft.pdf", Size: 500},
		{Name: "diagramm.bpmn", Size: 200},
	}

	require.NoError(t, ValidateBatch(files, uploadConfig()))
}

func TestValidateBatch_OneBadFileRejectsWholeBatch(t *testing.T) {
	files := []FileInfo{
		{Name: "lastenheft.pdf", Size: 500},
		{Name: "screenshot.png", Size: 300},
		{Name: "setup.exe", Size: 100},
	}

	err := ValidateBatch(files, uploadConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details["setup.exe"], "not allowed")
}

func TestValidateBatch_OversizedFileRejected(t *testing.T) {
	files := []FileInfo{{Name: "video.pdf", Size: 2048}}

	err := ValidateBatch(files, uploadConfig())
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details["video.pdf"], "exceeds limit")
}

func TestValidateBatch_TooManyFiles(t *testing.T) {
	files := []FileInfo{
		{Name: "a.pdf", Size: 1},
		{Name: "b.pdf", Size: 1},
		{Name: "c.pdf", Size: 1},
		{Name: "d.pdf", Size: 1},
	}

	err := ValidateBatch(files, uploadConfig())
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details["files"], "maximum is 3")
}

func TestValidateBatch_EmptyBatchRejected(t *testing.T) {
	err := ValidateBatch(nil, uploadConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestValidateBatch_ExtensionCaseInsensitive(t *testing.T) {
	files := []FileInfo{{Name: "Lastenheft.PDF", Size: 10}}

	require.NoError(t, ValidateBatch(files, uploadConfig()))
}

func TestValidateBatch_NoExtensionRejected(t *testing.T) {
	files := []FileInfo{{Name: "README", Size: 10}}

	err := ValidateBatch(files, uploadConfig())
	require.Error(t, err)
}
