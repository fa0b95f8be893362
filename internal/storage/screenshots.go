package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScreenshotStore holds uploaded route screenshots on local disk and resolves
// public URLs for them. Only the route screenshot goes through this store;
// product and driver images are plain external URLs.
type ScreenshotStore struct {
	dir       string
	publicURL string
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

func NewScreenshotStore(dir, publicURL string) (*ScreenshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	return &ScreenshotStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save writes the upload under <shipment-id>-<unix-ms>-<filename> and returns
// the public URL the shipment record stores.
func (s *ScreenshotStore) Save(shipmentID uuid.UUID, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s-%d-%s",
		shipmentID,
		time.Now().UnixMilli(),
		unsafeNameChars.ReplaceAllString(filepath.Base(filename), "_"),
	)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	return s.PublicURL(name), nil
}

func (s *ScreenshotStore) PublicURL(name string) string {
	return fmt.Sprintf("%s/route-screenshots/%s", s.publicURL, name)
}

// Dir is the directory served statically under /route-screenshots.
func (s *ScreenshotStore) Dir() string {
	return s.dir
}
