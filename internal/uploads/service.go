// Package uploads implements the admin image upload pipeline: per-file
// validation, storage behind a BlobStore, public URL issuance and multi-file
// fan-out with itemized partial failure.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dejobratic/vitrine/internal/uploads/ports"
)

// Options tune a single upload call. Zero values fall back to defaults.
type Options struct {
	Folder             string
	MaxSize            int64
	AllowedTypes       []string
	Quality            int
	GenerateThumbnails bool
}

const (
	defaultFolder  = "uploads"
	defaultMaxSize = 10 * 1024 * 1024
	defaultQuality = 85
)

func defaultAllowedTypes() []string {
	return []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
}

func (o Options) withDefaults() Options {
	if o.Folder == "" {
		o.Folder = defaultFolder
	}
	if o.MaxSize <= 0 {
		o.MaxSize = defaultMaxSize
	}
	if len(o.AllowedTypes) == 0 {
		o.AllowedTypes = defaultAllowedTypes()
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = defaultQuality
	}
	return o
}

// File is one inbound file from a multipart form.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Metadata describes a stored object.
type Metadata struct {
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Result is the per-file outcome of an upload. A failed validation is an
// unsuccessful Result, not a Go error: in a batch every file gets its own
// verdict and a failing file never aborts its siblings.
type Result struct {
	Success  bool      `json:"success"`
	URL      string    `json:"url,omitempty"`
	Error    string    `json:"error,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Service validates and stores images in the configured blob store.
type Service struct {
	store  ports.BlobStore
	logger *slog.Logger
}

// NewService wires required dependencies.
func NewService(store ports.BlobStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// UploadImage validates and stores a single file. Infrastructure failures
// surface inside the Result as well, so batch callers get uniform reporting.
func (s *Service) UploadImage(ctx context.Context, file File, opts Options) Result {
	opts = opts.withDefaults()

	if err := validate(file, opts); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	objectName := opts.Folder + "/" + uuid.NewString() + extension(file.Name)

	url, err := s.store.Put(ctx, objectName, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store image", "error", err, "object", objectName)
		return Result{Success: false, Error: fmt.Sprintf("failed to upload image: %v", err)}
	}

	if opts.GenerateThumbnails {
		// Thumbnails are not generated yet; the option is accepted for
		// forward compatibility with the admin form.
		s.logger.DebugContext(ctx, "thumbnail generation requested", "object", objectName)
	}

	return Result{
		Success: true,
		URL:     url,
		Metadata: &Metadata{
			Filename:    objectName,
			Size:        int64(len(file.Data)),
			ContentType: file.ContentType,
			UploadedAt:  time.Now().UTC(),
		},
	}
}

// UploadImages fans out over the batch, one Result per file in input order.
// A file's failure must not cancel or block the remaining files.
func (s *Service) UploadImages(ctx context.Context, files []File, opts Options) []Result {
	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, s.UploadImage(ctx, file, opts))
	}
	return results
}

// DeleteImage removes a stored object by its object name.
func (s *Service) DeleteImage(ctx context.Context, objectName string) error {
	if strings.TrimSpace(objectName) == "" {
		return ports.ErrNotFound
	}
	if err := s.store.Delete(ctx, objectName); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func validate(file File, opts Options) error {
	if int64(len(file.Data)) > opts.MaxSize {
		return fmt.Errorf("file size %.2fMB exceeds maximum allowed size of %.2fMB",
			float64(len(file.Data))/1024/1024, float64(opts.MaxSize)/1024/1024)
	}

	for _, allowed := range opts.AllowedTypes {
		if strings.EqualFold(file.ContentType, allowed) {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed, allowed types: %s",
		file.ContentType, strings.Join(opts.AllowedTypes, ", "))
}

func extension(filename string) string {
	return strings.ToLower(path.Ext(filename))
}
