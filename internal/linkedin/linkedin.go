// Package linkedin is a thin client for announcing a post on LinkedIn. It
// covers exactly one operation, creating a text share with a link, and leaves
// the OAuth dance to the caller: the access token arrives via configuration.
package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.linkedin.com"

// Client posts shares through the LinkedIn REST API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	authorURN  string // e.g. "urn:li:person:abc123"
}

func NewClient(token, authorURN string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("linkedin client requires an access token")
	}
	if authorURN == "" {
		return nil, fmt.Errorf("linkedin client requires an author URN")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     defaultAPIURL,
		token:      token,
		authorURN:  authorURN,
	}, nil
}

type shareRequest struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      visibility      `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    text         `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []shareMedia `json:"media,omitempty"`
}

type shareMedia struct {
	Status      string `json:"status"`
	OriginalURL string `json:"originalUrl"`
}

type text struct {
	Text string `json:"text"`
}

type visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

type shareResponse struct {
	ID string `json:"id"`
}

// Share creates a public share with commentary and a link to the post.
// It returns the created share ID.
func (c *Client) Share(ctx context.Context, commentary, postURL string) (string, error) {
	payload := shareRequest{
		Author:         c.authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    text{Text: commentary},
				ShareMediaCategory: "ARTICLE",
				Media:              []shareMedia{{Status: "READY", OriginalURL: postURL}},
			},
		},
		Visibility: visibility{MemberNetworkVisibility: "PUBLIC"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal share request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v2/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build share request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post share: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("linkedin API returned %d: %s", resp.StatusCode, detail)
	}

	var out shareResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode share response: %w", err)
	}
	return out.ID, nil
}
