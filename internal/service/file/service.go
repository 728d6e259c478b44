package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/storage"
)

var allowedAttachmentExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

type FileService interface {
	// Request attachment uploads
	UploadTimeOffAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
	UploadWfhAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// uploadAttachment stores a request attachment under folder/employeeID with a
// uuid-suffixed filename so repeated uploads never collide.
func (s *fileServiceImpl) uploadAttachment(ctx context.Context, folder, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isValid := false
	for _, allowed := range allowedAttachmentExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png, pdf allowed")
	}

	contentType := "application/octet-stream"
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uniqueID, ext)
	path := filepath.Join(folder, employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadTimeOffAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return s.uploadAttachment(ctx, "time-off-attachments", employeeID, file, filename)
}

func (s *fileServiceImpl) UploadWfhAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return s.uploadAttachment(ctx, "wfh-attachments", employeeID, file, filename)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
