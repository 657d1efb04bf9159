package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Profile is the directory record the identity provider holds for a subject,
// separate from anything carried inside a token.
type Profile struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// ProviderClient fetches subject profiles from the identity provider's user
// directory endpoint.
type ProviderClient struct {
	baseURL string
	client  *http.Client
}

// NewProviderClient builds a client for the given profile endpoint base URL.
func NewProviderClient(baseURL string) *ProviderClient {
	return &ProviderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Profile fetches the provider's profile for the given subject.
func (p *ProviderClient) Profile(ctx context.Context, subjectID string) (Profile, error) {
	u := p.baseURL + "/" + url.PathEscape(subjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Profile{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Profile{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("profile endpoint returned %d for subject %s", resp.StatusCode, subjectID)
	}

	var prof Profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return Profile{}, err
	}
	return prof, nil
}
