package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/infrastructure/dynamo"
	"github.com/auth-flow-api/internal/pkg/id"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	IsPrivate   bool
	OwnerID     string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	UploadProfileImage(ctx context.Context, input UploadInput) (*domain.File, error)
	Download(ctx context.Context, fileID, requesterID string, isAdmin bool) (io.ReadCloser, *domain.File, error)
	Link(ctx context.Context, fileID, requesterID string, isAdmin bool) (string, error)
	Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type accountStore interface {
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type service struct {
	objects  objectStore
	files    fileStore
	accounts accountStore
}

func NewService(objects objectStore, files fileStore, accounts accountStore) Service {
	return &service{objects: objects, files: files, accounts: accounts}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	return s.upload(ctx, input, fmt.Sprintf("files/%s/%s", input.OwnerID, sanitizeFilename(input.Filename)))
}

// UploadProfileImage stores the image and patches the owning account's
// profile_image to the new object URL.
func (s *service) UploadProfileImage(ctx context.Context, input UploadInput) (*domain.File, error) {
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, domain.E(domain.KindBadRequest, "profile image must be an image file")
	}
	f, err := s.upload(ctx, input, fmt.Sprintf("profiles/%s/%s", input.OwnerID, sanitizeFilename(input.Filename)))
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, input.OwnerID, map[string]interface{}{dynamo.FieldProfileImage: f.URL}); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) upload(ctx context.Context, input UploadInput, key string) (*domain.File, error) {
	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	url, err := s.objects.Upload(ctx, key, tee, input.ContentType)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.File{
		FileID:    id.New(),
		Object:    key,
		Size:      input.Size,
		Type:      input.ContentType,
		Name:      sanitizeFilename(input.Filename),
		Hash:      hex.EncodeToString(hasher.Sum(nil)),
		URL:       url,
		IsPrivate: input.IsPrivate,
		OwnerID:   input.OwnerID,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.files.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID, requesterID string, isAdmin bool) (io.ReadCloser, *domain.File, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if f.IsPrivate && f.OwnerID != requesterID && !isAdmin {
		return nil, nil, domain.E(domain.KindForbidden, "you do not have access to this file")
	}
	rc, err := s.objects.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

// Link returns a time-limited presigned URL for direct download, applying
// the same access rule as Download.
func (s *service) Link(ctx context.Context, fileID, requesterID string, isAdmin bool) (string, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	if f.IsPrivate && f.OwnerID != requesterID && !isAdmin {
		return "", domain.E(domain.KindForbidden, "you do not have access to this file")
	}
	return s.objects.PresignedURL(ctx, f.Object, 15*time.Minute)
}

func (s *service) Delete(ctx context.Context, fileID, requesterID string, isAdmin bool) error {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if f.OwnerID != requesterID && !isAdmin {
		return domain.E(domain.KindForbidden, "you can only delete your own files")
	}
	if err := s.objects.Delete(ctx, f.Object); err != nil {
		return err
	}
	return s.files.SoftDelete(ctx, fileID)
}

// sanitizeFilename strips path components and unsafe characters.
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		return "file"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
