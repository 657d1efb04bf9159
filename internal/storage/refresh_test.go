package storage

import (
	"context"
	"strings"
	"testing"
)

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"presigned url",
			"https://bucket.s3.eu-west-1.amazonaws.com/lessons/abc/video.mp4?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=3600",
			"lessons/abc/video.mp4",
		},
		{
			"no query string",
			"https://bucket.s3.eu-west-1.amazonaws.com/thumbnails/xyz/cover.png",
			"thumbnails/xyz/cover.png",
		},
		{"missing marker", "https://cdn.example.com/lessons/abc/video.mp4?sig=1", ""},
		{"empty", "", ""},
		{"marker at end", "https://bucket.s3.eu-west-1.amazonaws.com/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractKey(tt.url); got != tt.want {
				t.Errorf("ExtractKey(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestRefreshLinkFromKey(t *testing.T) {
	m := testLinkManager(t)

	key := "lessons/abc/video.mp4"
	url := "https://bucket.s3.eu-west-1.amazonaws.com/lessons/abc/video.mp4?X-Amz-Expires=3600"
	m.RefreshLink(context.Background(), &key, &url)

	if key != "lessons/abc/video.mp4" {
		t.Errorf("key changed to %q", key)
	}
	if url == "" || strings.Contains(url, "amazonaws.com") {
		t.Errorf("url not rewritten: %q", url)
	}
	if !strings.Contains(url, "lessons/abc/video.mp4") {
		t.Errorf("url does not reference the key: %q", url)
	}
}

func TestRefreshLinkRecoversLegacyKey(t *testing.T) {
	m := testLinkManager(t)

	key := ""
	url := "https://bucket.s3.eu-west-1.amazonaws.com/lessons/abc/video.mp4?X-Amz-Expires=3600"
	m.RefreshLink(context.Background(), &key, &url)

	if key != "lessons/abc/video.mp4" {
		t.Errorf("recovered key = %q, want lessons/abc/video.mp4", key)
	}
	if url == "" || strings.Contains(url, "amazonaws.com") {
		t.Errorf("url not rewritten: %q", url)
	}
}

func TestRefreshLinkLeavesUnparseableURLUntouched(t *testing.T) {
	m := testLinkManager(t)

	key := ""
	stale := "https://cdn.example.com/lessons/abc/video.mp4?sig=1"
	url := stale
	m.RefreshLink(context.Background(), &key, &url)

	if key != "" {
		t.Errorf("key = %q, want empty", key)
	}
	if url != stale {
		t.Errorf("url = %q, want untouched %q", url, stale)
	}
}

func TestRefreshLinkNoContent(t *testing.T) {
	m := testLinkManager(t)

	key, url := "", ""
	m.RefreshLink(context.Background(), &key, &url)
	if key != "" || url != "" {
		t.Errorf("empty record mutated: key=%q url=%q", key, url)
	}
}
