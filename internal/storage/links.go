// Package storage issues time-boxed links for blobs held in an S3-compatible
// object store and keeps stored media references fresh on the way out.
// Object keys are the stable identifiers; every URL is a derived, expiring
// view and is never persisted as authoritative.
package storage

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const (
	// Upload URLs are write-scoped and short: the client is expected to
	// start the PUT right away.
	uploadLinkTTL = 15 * time.Minute
	// Read URLs live long enough to cover a viewing session.
	readLinkTTL = time.Hour
)

// UploadLink pairs a presigned upload URL with the object key it targets.
// Callers persist the key; the URL is only valid for its signature window.
type UploadLink struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

// LinkManager issues presigned URLs for a single bucket.
type LinkManager struct {
	client *minio.Client
	bucket string
}

func NewLinkManager(client *minio.Client, bucket string) *LinkManager {
	return &LinkManager{client: client, bucket: bucket}
}

// IssueUploadLink generates a fresh object key namespaced under prefix and a
// write-scoped presigned URL for it. The random segment makes the key
// collision-resistant regardless of the desired file name.
func (m *LinkManager) IssueUploadLink(ctx context.Context, prefix, desiredName string) (UploadLink, error) {
	objectKey := prefix + "/" + uuid.NewString() + "/" + desiredName
	u, err := m.client.PresignedPutObject(ctx, m.bucket, objectKey, uploadLinkTTL)
	if err != nil {
		return UploadLink{}, err
	}
	return UploadLink{URL: u.String(), ObjectKey: objectKey}, nil
}

// IssueReadLink returns a read-scoped presigned URL for an existing key.
// An empty key means the record has no content; that is a valid state and
// yields an empty URL, not an error.
func (m *LinkManager) IssueReadLink(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectKey, readLinkTTL, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Delete removes the object best-effort. Failures are logged and swallowed:
// blob cleanup must never block or roll back the metadata deletion it
// follows. Deleting an absent or never-issued key is a no-op.
func (m *LinkManager) Delete(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("storage: delete object %s: %v", objectKey, err)
	}
}
