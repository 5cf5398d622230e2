package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront/internal/storage"
	"storefront/internal/validate"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 5 << 20

var (
	reExt       = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
	errTooLarge = validate.Fail("image", "File size must be less than 5MB")
)

type UploadService struct {
	Store storage.Store
	Now   func() time.Time
}

func NewUploadService(store storage.Store) *UploadService {
	return &UploadService{Store: store, Now: time.Now}
}

// Image checks the upload policy, stores the file under a fresh name and
// returns its public URL.
func (s *UploadService) Image(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return "", validate.Fail("image", "File must be an image")
	}
	if size > MaxImageSize {
		return "", errTooLarge
	}
	// the declared size can understate the body
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", errTooLarge
	}
	name := s.imageName(filename)
	url, err := s.Store.Put(ctx, name, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	return url, nil
}

// imageName is product_<epoch-millis>_<base36 random><ext>.
func (s *UploadService) imageName(original string) string {
	id := uuid.New()
	rnd := strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36)
	ext := strings.ToLower(filepath.Ext(original))
	if !reExt.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("product_%d_%s%s", s.Now().UnixMilli(), rnd, ext)
}
