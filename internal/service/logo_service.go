package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invoicepad/internal/config"
	"invoicepad/internal/domain"
	"invoicepad/internal/port"
)

// LogoUpload is the result of a successful logo upload.
type LogoUpload struct {
	Key     string      `json:"key"`
	URL     string      `json:"url"`
	Session SessionView `json:"session"`
}

// LogoService validates and stores invoice logo images, then attaches the
// presigned image URL to the session's invoice.
type LogoService interface {
	Upload(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) (*LogoUpload, error)
}

type logoService struct {
	sessions SessionService
	storage  port.ObjectStorage
	cfg      *config.S3Config
}

// NewLogoService creates a new LogoService implementation.
func NewLogoService(sessions SessionService, storage port.ObjectStorage, cfg *config.S3Config) LogoService {
	return &logoService{
		sessions: sessions,
		storage:  storage,
		cfg:      cfg,
	}
}

func (s *logoService) Upload(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) (*LogoUpload, error) {
	// Reject before touching storage: session must exist and the file must
	// be an allowed image type within the size limit.
	current, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fileType, err := resolveFileType(fileHeader)
	if err != nil {
		return nil, err
	}

	maxSize := s.cfg.MaxFileSizeMB * 1024 * 1024
	if maxSize > 0 && fileHeader.Size > maxSize {
		return nil, domain.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("logoService.Upload: open multipart file: %v", err)
		return nil, domain.ErrUploadFailed
	}
	defer file.Close()

	key := fmt.Sprintf("logos/%s/%s.%s", id, uuid.New(), fileType)
	if err := s.put(ctx, key, file, fileHeader.Size, domain.AllowedFileTypes[fileType]); err != nil {
		return nil, err
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		log.Printf("logoService.Upload: presign %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	view, err := s.sessions.EditField(ctx, id, "logo", url)
	if err != nil {
		return nil, err
	}

	s.deleteReplaced(ctx, id, current.Invoice.Logo)

	return &LogoUpload{
		Key:     key,
		URL:     url,
		Session: *view,
	}, nil
}

func (s *logoService) put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		log.Printf("logoService.Upload: upload %s: %v", key, err)
		return domain.ErrUploadFailed
	}
	return nil
}

// deleteReplaced removes the previous logo object once a new one has been
// attached. Best effort: a stale object is not worth failing the upload over.
func (s *logoService) deleteReplaced(ctx context.Context, id uuid.UUID, prevURL string) {
	if prevURL == "" {
		return
	}
	key := port.ObjectKeyFromURL(prevURL, s.cfg.Bucket)
	if !strings.HasPrefix(key, "logos/"+id.String()+"/") {
		return
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		log.Printf("logoService.Upload: delete replaced logo %s: %v", key, err)
	}
}

// resolveFileType determines the FileType from the declared content type,
// falling back to the file extension.
func resolveFileType(fileHeader *multipart.FileHeader) (domain.FileType, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if ct, _, found := strings.Cut(contentType, ";"); found {
		contentType = ct
	}
	if ft, ok := domain.AllowedContentTypes[strings.TrimSpace(contentType)]; ok {
		return ft, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft, nil
	}
	return "", domain.ErrUnsupportedFileType
}
