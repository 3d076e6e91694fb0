// Package uploads validates resume files locally and drives the
// upload-then-poll flow against the backend.
package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileBytes is the client-side size ceiling. The backend enforces its
// own limit; rejecting locally saves the round trip.
const MaxFileBytes = 5 * 1024 * 1024

// Content types the parser accepts.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ValidationError is a local rejection of a file before any network
// traffic.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot upload %s: %s", e.Path, e.Reason)
}

// FileInfo describes a validated upload candidate.
type FileInfo struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// ValidateFile checks that the file exists, is within the size limit,
// and is a PDF or DOCX by extension.
func ValidateFile(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ValidationError{Path: path, Reason: "file does not exist"}
		}
		return nil, fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, &ValidationError{Path: path, Reason: "path is a directory"}
	}
	if stat.Size() == 0 {
		return nil, &ValidationError{Path: path, Reason: "file is empty"}
	}
	if stat.Size() > MaxFileBytes {
		return nil, &ValidationError{
			Path:   path,
			Reason: fmt.Sprintf("file is %.1f MB; the limit is %d MB", float64(stat.Size())/(1024*1024), MaxFileBytes/(1024*1024)),
		}
	}

	contentType, err := contentTypeFor(path)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Path:        path,
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Size:        stat.Size(),
	}, nil
}

func contentTypeFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ContentTypePDF, nil
	case ".docx":
		return ContentTypeDOCX, nil
	default:
		return "", &ValidationError{Path: path, Reason: "only PDF and DOCX files are supported"}
	}
}
