package storage

import (
	"context"
	"log"
	"strings"
)

// keyMarker separates the virtual-hosted bucket host from the object key in
// the presigned URLs legacy records were written with.
const keyMarker = ".amazonaws.com/"

// RefreshLink re-derives the download URL for a stored media reference
// before it leaves the system. key is the source of truth; when only a
// legacy URL is present the key is parsed back out of it and written
// through (self-healing migration). Parsing failures are not errors: the
// record goes out with its stale URL untouched rather than failing the read.
func (m *LinkManager) RefreshLink(ctx context.Context, key, displayURL *string) {
	switch {
	case *key != "":
		fresh, err := m.IssueReadLink(ctx, *key)
		if err != nil {
			log.Printf("storage: refresh link for key %s: %v", *key, err)
			return
		}
		*displayURL = fresh
	case *displayURL != "":
		recovered := ExtractKey(*displayURL)
		if recovered == "" {
			return
		}
		fresh, err := m.IssueReadLink(ctx, recovered)
		if err != nil {
			log.Printf("storage: refresh legacy link for key %s: %v", recovered, err)
			return
		}
		*key = recovered
		*displayURL = fresh
	}
}

// ExtractKey recovers the object key from a presigned URL of the form
// https://bucket.s3.region.amazonaws.com/OBJECT_KEY?X-Amz-... It returns ""
// when the URL does not carry the expected host marker or names no key.
func ExtractKey(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	i := strings.Index(rawURL, keyMarker)
	if i == -1 {
		return ""
	}
	key := rawURL[i+len(keyMarker):]
	if q := strings.IndexByte(key, '?'); q != -1 {
		key = key[:q]
	}
	return key
}
