package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/persona-agent/internal/types"
)

const (
	redditAPIBase  = "https://oauth.reddit.com"
	redditTokenURL = "https://www.reddit.com/api/v1/access_token"
	redditLinkBase = "https://www.reddit.com"

	// tokenExpirySlack renews the app token slightly before the server-side
	// expiry to avoid racing it.
	tokenExpirySlack = 30 * time.Second
)

// RedditSource implements Source against Reddit's OAuth listing API using
// application-only (client credentials) auth.
type RedditSource struct {
	client       *http.Client
	clientID     string
	clientSecret string
	userAgent    string
	baseURL      string
	tokenURL     string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewRedditSource creates a RedditSource with the given app credentials.
func NewRedditSource(clientID, clientSecret string, opts *Options) (*RedditSource, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("reddit client id and secret are required")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = redditAPIBase
	}
	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = redditTokenURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &RedditSource{
		client:       &http.Client{Timeout: timeout},
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		baseURL:      baseURL,
		tokenURL:     tokenURL,
	}, nil
}

// tokenResponse is the token endpoint payload
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// listing mirrors the subset of the listing payload we consume
type listing struct {
	Data struct {
		Children []struct {
			Data listingItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// listingItem carries both submission and comment fields; the API returns a
// superset and unused fields stay zero-valued.
type listingItem struct {
	Title        string `json:"title"`
	Selftext     string `json:"selftext"`
	SelftextHTML string `json:"selftext_html"`
	Body         string `json:"body"`
	BodyHTML     string `json:"body_html"`
	Permalink    string `json:"permalink"`
	Subreddit    string `json:"subreddit"`
}

// token returns a valid app token, requesting a fresh one when missing or
// near expiry.
func (s *RedditSource) token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry.Add(-tokenExpirySlack)) {
		return s.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{URL: s.tokenURL, Message: "failed to create token request", Cause: err}
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &Error{URL: s.tokenURL, Message: "token request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: s.tokenURL, Message: "token request rejected", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: s.tokenURL, Message: "failed to read token response", Cause: err}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", &Error{URL: s.tokenURL, Message: "failed to parse token response", Cause: err}
	}
	if tok.AccessToken == "" {
		return "", &Error{URL: s.tokenURL, Message: "token response missing access_token"}
	}

	s.accessToken = tok.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return s.accessToken, nil
}

// Listing fetches the user's most recent records of one kind, newest first.
func (s *RedditSource) Listing(ctx context.Context, username string, kind types.Kind, limit int) ([]types.TextRecord, error) {
	endpoint, err := kindEndpoint(kind)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	listURL := fmt.Sprintf("%s/user/%s/%s?sort=new&limit=%s",
		s.baseURL, url.PathEscape(username), endpoint, strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, &Error{URL: listURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &Error{URL: listURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: listURL, Message: "failed to read response body", Cause: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, &Error{URL: listURL, Message: fmt.Sprintf("user %s not found", username), StatusCode: resp.StatusCode}
	case http.StatusForbidden:
		return nil, &Error{URL: listURL, Message: fmt.Sprintf("user %s is suspended or private", username), StatusCode: resp.StatusCode}
	default:
		return nil, &Error{URL: listURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode), StatusCode: resp.StatusCode}
	}

	var lst listing
	if err := json.Unmarshal(body, &lst); err != nil {
		return nil, &Error{URL: listURL, Message: "failed to parse listing JSON", Cause: err}
	}

	records := make([]types.TextRecord, 0, len(lst.Data.Children))
	for _, child := range lst.Data.Children {
		rec := recordFromItem(child.Data, kind)
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// recordFromItem maps one listing item onto a TextRecord. Submission text is
// title plus body; comment text is the body alone. HTML payload fields are
// preferred over the raw markdown when present.
func recordFromItem(item listingItem, kind types.Kind) types.TextRecord {
	var text string
	switch kind {
	case types.KindPost:
		body := item.Selftext
		if item.SelftextHTML != "" {
			body = HTMLToText(item.SelftextHTML)
		}
		text = strings.TrimSpace(item.Title + "\n" + body)
	case types.KindComment:
		text = item.Body
		if item.BodyHTML != "" {
			text = HTMLToText(item.BodyHTML)
		}
		text = strings.TrimSpace(text)
	}

	return types.TextRecord{
		Text:      text,
		SourceURL: redditLinkBase + item.Permalink,
		ForumName: item.Subreddit,
		Kind:      kind,
	}
}

func kindEndpoint(kind types.Kind) (string, error) {
	switch kind {
	case types.KindPost:
		return "submitted", nil
	case types.KindComment:
		return "comments", nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}
