// File: internal/export/service.go
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"strings"
	"time"

	"krikins_backend/internal/card"
	"krikins_backend/internal/common"
	"krikins_backend/internal/profile"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service renders persisted profiles to downloadable PNG card images.
type Service interface {
	// ExportCard rasterizes the card for one stored profile and returns the
	// PNG bytes together with the download filename.
	ExportCard(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	// RenderCard rasterizes a card for an in-memory profile.
	RenderCard(ctx context.Context, p *profile.Profile) ([]byte, error)
}

// ServiceImplementation implements the export Service interface.
type ServiceImplementation struct {
	profiles profile.Service
	renderer *card.Renderer
	client   *http.Client
	logger   *zap.Logger
}

// NewService creates a new export service.
func NewService(profiles profile.Service, renderer *card.Renderer, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		profiles: profiles,
		renderer: renderer,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// ExportCard implements Service.
func (s *ServiceImplementation) ExportCard(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.RenderCard(ctx, p)
	if err != nil {
		return nil, "", err
	}
	return data, Filename(p.Name), nil
}

// RenderCard implements Service.
func (s *ServiceImplementation) RenderCard(ctx context.Context, p *profile.Profile) ([]byte, error) {
	photo, err := s.resolveImage(ctx, p.ImageURL)
	if err != nil {
		// A broken portrait source should not make the card impossible to
		// export; render with the empty frame instead.
		s.logger.Warn("Failed to resolve portrait image, rendering without it",
			zap.String("profileID", p.ID.String()), zap.Error(err))
		photo = nil
	}

	img, err := s.renderer.Render(p, photo)
	if err != nil {
		s.logger.Error("Failed to render card", zap.String("profileID", p.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not render the card image.")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.logger.Error("Failed to encode card PNG", zap.String("profileID", p.ID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not encode the card image.")
	}
	return buf.Bytes(), nil
}

// resolveImage turns the profile's image URL into a decoded image. Data URIs
// are decoded in place; http(s) URLs are fetched with the request context so
// a cancelled export stops the download.
func (s *ServiceImplementation) resolveImage(ctx context.Context, imageURL string) (image.Image, error) {
	if imageURL == "" {
		return nil, nil
	}

	var reader *bytes.Reader
	switch {
	case strings.HasPrefix(imageURL, "data:"):
		idx := strings.Index(imageURL, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		payload := imageURL[idx+1:]
		var data []byte
		var err error
		if strings.Contains(imageURL[:idx], ";base64") {
			data, err = base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return nil, fmt.Errorf("failed to decode data URI: %w", err)
			}
		} else {
			data = []byte(payload)
		}
		reader = bytes.NewReader(data)

	case strings.HasPrefix(imageURL, "http://"), strings.HasPrefix(imageURL, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build image request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return nil, fmt.Errorf("failed to read image body: %w", err)
		}
		reader = bytes.NewReader(buf.Bytes())

	default:
		return nil, fmt.Errorf("unsupported image URL scheme")
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Filename derives the download filename from the profile's display name:
// the slugified name with hyphens turned into underscores, or "card" when
// nothing printable remains.
func Filename(name string) string {
	base := strings.ReplaceAll(slug.Make(name), "-", "_")
	if base == "" {
		base = "card"
	}
	return base + ".png"
}
