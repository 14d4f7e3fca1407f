package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/brittbaker321/reddit-trend-tracker/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultAuthURL = "https://www.reddit.com"
	defaultAPIURL  = "https://oauth.reddit.com"
)

// Client talks to the Reddit API using OAuth2 client credentials
type Client struct {
	clientID     string
	clientSecret string
	userAgent    string
	client       *resty.Client
	authURL      string
	apiURL       string
	accessToken  string
	tokenExpiry  time.Time
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// listing is the envelope Reddit wraps around both post and comment lists
type listing struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data listingItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Body        string  `json:"body"`
	Author      string  `json:"author"`
	Permalink   string  `json:"permalink"`
	Created     float64 `json:"created_utc"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// NewClient creates a new Reddit client
func NewClient(clientID, clientSecret, userAgent string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		client:       resty.New().SetTimeout(30 * time.Second),
		authURL:      defaultAuthURL,
		apiURL:       defaultAPIURL,
	}
}

// SetBaseURLs overrides the Reddit endpoints (used in tests)
func (c *Client) SetBaseURLs(authURL, apiURL string) {
	c.authURL = authURL
	c.apiURL = apiURL
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		Post(c.authURL + "/api/v1/access_token")

	if err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("reddit authentication returned status %d", resp.StatusCode())
	}

	var auth authResponse
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		return fmt.Errorf("reddit authentication failed: %w", err)
	}
	if auth.AccessToken == "" {
		return fmt.Errorf("reddit authentication returned no token")
	}

	c.accessToken = auth.AccessToken
	// Refresh a minute early to avoid using a token that expires mid-request
	c.tokenExpiry = time.Now().Add(time.Duration(auth.ExpiresIn)*time.Second - time.Minute)
	return nil
}

// FetchPosts returns up to limit newest posts from the subreddit
func (c *Client) FetchPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	listURL := fmt.Sprintf("%s/r/%s/new.json?limit=%d", c.apiURL, url.PathEscape(subreddit), limit)
	resp, err := c.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var page listing
	if err := json.Unmarshal(resp, &page); err != nil {
		return nil, fmt.Errorf("failed to decode post listing: %w", err)
	}

	var posts []models.Post
	for _, child := range page.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		item := child.Data
		posts = append(posts, models.Post{
			ID:          item.ID,
			Title:       item.Title,
			Selftext:    item.Selftext,
			Author:      item.Author,
			Permalink:   item.Permalink,
			CreatedAt:   time.Unix(int64(item.Created), 0).UTC(),
			Score:       item.Score,
			NumComments: item.NumComments,
		})
		if len(posts) == limit {
			break
		}
	}

	logrus.Debugf("Fetched %d posts from r/%s", len(posts), subreddit)
	return posts, nil
}

// FetchComments returns up to limit top-level comments for the post
func (c *Client) FetchComments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	commentsURL := fmt.Sprintf("%s/comments/%s.json?limit=%d&depth=1&sort=top", c.apiURL, url.PathEscape(postID), limit)
	resp, err := c.get(ctx, commentsURL)
	if err != nil {
		return nil, err
	}

	// The comments endpoint returns a two-element array: the post listing
	// followed by the comment listing.
	var pages []listing
	if err := json.Unmarshal(resp, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode comment listing: %w", err)
	}
	if len(pages) < 2 {
		return nil, nil
	}

	var comments []models.Comment
	for _, child := range pages[1].Data.Children {
		// "more" stubs and anything else that is not a comment are skipped
		if child.Kind != "t1" {
			continue
		}
		item := child.Data
		comments = append(comments, models.Comment{
			ID:        item.ID,
			Body:      item.Body,
			Author:    item.Author,
			CreatedAt: time.Unix(int64(item.Created), 0).UTC(),
			Score:     item.Score,
		})
		if len(comments) == limit {
			break
		}
	}

	return comments, nil
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.accessToken).
		SetHeader("User-Agent", c.userAgent).
		Get(requestURL)

	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
