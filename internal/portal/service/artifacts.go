package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/parkmoor/clubhouse/internal/portal/blob"
	"github.com/parkmoor/clubhouse/internal/portal/domain"
	"github.com/parkmoor/clubhouse/pkg/slogx"
)

// DefaultMaxUploadBytes caps a single upload at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

// ArtifactService stores and lists per-user uploads in blob storage,
// namespaced users/<username>/<filename>.
type ArtifactService struct {
	Storage        blob.Storage
	MaxUploadBytes int64
}

func (s *ArtifactService) maxBytes() int64 {
	if s.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return s.MaxUploadBytes
}

func userPrefix(username string) string {
	return "users/" + username + "/"
}

// Upload persists one named file for username. The filename is reduced
// to its base name; traversal separators or an empty name are rejected.
func (s *ArtifactService) Upload(ctx context.Context, username, filename string, r io.Reader, size int64, contentType string) (domain.Artifact, error) {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return domain.Artifact{}, fmt.Errorf("%w: invalid file name", ErrValidation)
	}
	if size <= 0 {
		return domain.Artifact{}, fmt.Errorf("%w: empty file", ErrValidation)
	}
	if size > s.maxBytes() {
		return domain.Artifact{}, fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, s.maxBytes())
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := userPrefix(username) + name
	if err := s.Storage.Put(ctx, key, r, size, contentType); err != nil {
		return domain.Artifact{}, mapStoreErr(err)
	}

	return domain.Artifact{Key: key, Name: name, Size: size}, nil
}

// List returns the user's artifacts with presigned download links when
// the backend provides them. A presign failure degrades to a plain
// listing rather than failing the dashboard.
func (s *ArtifactService) List(ctx context.Context, username string) ([]domain.Artifact, error) {
	prefix := userPrefix(username)

	// Listing and presigning are quick backend round trips; streaming
	// uploads in Upload stay unbounded.
	ctx, cancel := boundCtx(ctx)
	defer cancel()

	objects, err := s.Storage.List(ctx, prefix)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	artifacts := make([]domain.Artifact, 0, len(objects))
	for _, obj := range objects {
		url, err := s.Storage.PresignGet(ctx, obj.Key)
		if err != nil {
			slogx.FromContext(ctx).Warn("presign failed", "key", obj.Key, "err", err)
			url = ""
		}
		artifacts = append(artifacts, domain.Artifact{
			Key:          obj.Key,
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          url,
		})
	}

	return artifacts, nil
}
