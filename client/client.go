package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

type UserInfo struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type Writer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Draft struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author Writer `json:"author"`
}

type DraftDetail struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  Writer `json:"author"`
}

type DraftFormData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Publish bool   `json:"publish,omitempty"`
}

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      Writer    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
}

type PostsPage struct {
	Posts    []Post `json:"posts"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
}

type PostDetail struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	HTML        string    `json:"html"`
	Author      Writer    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	store   *TokenStore

	// Current user is derived from the token: cleared whenever the token
	// changes, refetched lazily on the next CurrentUser call.
	mu         sync.Mutex
	cachedFor  string
	cachedUser *UserInfo
}

func New(baseURL string, store *TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var response struct {
		JWT string `json:"jwt"`
	}
	if err := c.do(http.MethodPost, "/api/auth/login", body, &response, false); err != nil {
		return err
	}

	return c.store.Set(response.JWT)
}

// Logout clears the stored token.
func (c *Client) Logout() error {
	return c.store.Set("")
}

// CurrentUser returns nil without touching the API when no token is stored;
// otherwise it fetches user-info, caching per token value.
func (c *Client) CurrentUser() (*UserInfo, error) {
	token, err := c.store.Get()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	c.mu.Lock()
	if c.cachedUser != nil && c.cachedFor == token {
		user := c.cachedUser
		c.mu.Unlock()
		return user, nil
	}
	c.mu.Unlock()

	var user UserInfo
	if err := c.do(http.MethodGet, "/api/auth/userinfo", nil, &user, true); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cachedFor = token
	c.cachedUser = &user
	c.mu.Unlock()

	return &user, nil
}

func (c *Client) ListDrafts() ([]Draft, error) {
	var drafts []Draft
	err := c.do(http.MethodGet, "/api/draft", nil, &drafts, true)
	return drafts, err
}

func (c *Client) GetDraft(id int64) (*DraftDetail, error) {
	var detail DraftDetail
	err := c.do(http.MethodGet, fmt.Sprintf("/api/draft/%d", id), nil, &detail, true)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreateDraft(data DraftFormData) (int64, error) {
	var id int64
	err := c.do(http.MethodPost, "/api/draft", data, &id, true)
	return id, err
}

func (c *Client) UpdateDraft(id int64, data DraftFormData) error {
	return c.do(http.MethodPut, fmt.Sprintf("/api/draft/%d", id), data, nil, true)
}

func (c *Client) DeleteDraft(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/draft/%d", id), nil, nil, true)
}

func (c *Client) Newest(page int) (*PostsPage, error) {
	var result PostsPage
	err := c.do(http.MethodGet, fmt.Sprintf("/api/blog?page=%d", page), nil, &result, false)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetPost(id int64) (*PostDetail, error) {
	var detail PostDetail
	err := c.do(http.MethodGet, fmt.Sprintf("/api/blog/%d", id), nil, &detail, false)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreateComment(postID int64, content string) (int64, error) {
	var id int64
	body := map[string]string{"content": content}
	err := c.do(http.MethodPost, fmt.Sprintf("/api/blog/%d/comment", postID), body, &id, true)
	return id, err
}

func (c *Client) do(method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		token, err := c.store.Get()
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decodeAPIError(res)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode, Message: res.Status}

	var envelope struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Fields = envelope.Fields
	}
	return apiErr
}
