package domain

import (
	"path"
	"strings"
	"time"
)

// Specification file types
const (
	SpecTypeLastenheft           = "lastenheft"
	SpecTypeProzessdokumentation = "prozessdokumentation"
)

// Attachment is an uploaded file reference on an answer group. Removing
// an attachment only removes this reference, never the stored object.
type Attachment struct {
	URL          string     `json:"url"`
	Name         string     `json:"name"`
	FileType     string     `json:"file_type"`
	Size         int64      `json:"size"`
	UploadedDate *time.Time `json:"uploaded_date,omitempty"`
}

// SpecificationFile is a generated narrative document (Lastenheft or
// process documentation) stored verbatim as returned by the generator.
type SpecificationFile struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Content     string     `json:"content"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

// AppSpecification is a generated deployment specification for the
// no-code app builder.
type AppSpecification struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
}

// BPMNFile is an uploaded BPMN diagram reference.
type BPMNFile struct {
	URL          string     `json:"url"`
	Name         string     `json:"name"`
	UploadedDate *time.Time `json:"uploaded_date,omitempty"`
	DirectLink   string     `json:"direct_link,omitempty"`
}

// PresentationAsset is an uploaded presentation video, image or
// PowerPoint reference.
type PresentationAsset struct {
	URL          string     `json:"url"`
	Name         string     `json:"name"`
	Title        string     `json:"title,omitempty"`
	UploadedDate *time.Time `json:"uploaded_date,omitempty"`
	Size         int64      `json:"size,omitempty"`
}

// UploadedFile is a supporting document uploaded for Lastenheft
// generation (document-grounded generation input).
type UploadedFile struct {
	URL          string     `json:"url"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Size         int64      `json:"size"`
	UploadedDate *time.Time `json:"uploaded_date,omitempty"`
}

// InferFileType maps a file name to the coarse type shown in the UI.
func InferFileType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "pdf"
	case ".doc", ".docx":
		return "word"
	case ".xls", ".xlsx":
		return "excel"
	case ".ppt", ".pptx":
		return "powerpoint"
	case ".png", ".jpg", ".jpeg", ".gif":
		return "image"
	case ".mp4", ".mov", ".webm":
		return "video"
	case ".bpmn", ".xml":
		return "bpmn"
	case ".txt", ".md":
		return "text"
	default:
		return "other"
	}
}

// RemoveAt returns the list without the element at index, order
// preserved. Out-of-range indexes leave the list unchanged.
func RemoveAt[T any](list []T, index int) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}
