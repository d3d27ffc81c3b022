package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/vytor/wordcards/internal/errors"
	"github.com/vytor/wordcards/internal/logger"
	"github.com/vytor/wordcards/internal/models"
)

const maxResponseBytes = 1 << 20

// Endpoints holds the base URLs of the five backend resources.
type Endpoints struct {
	Auth       string
	Categories string
	Cards      string
	Translate  string
	Accounts   string
}

// Client issues requests to the backend resources. It never retries and
// never caches.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
}

func New(endpoints Endpoints, timeout time.Duration) *Client {
	return NewWithHTTPClient(endpoints, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(endpoints Endpoints, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		endpoints:  endpoints,
	}
}

type authRequest struct {
	Action   models.AuthMode `json:"action"`
	Username string          `json:"username"`
	Password string          `json:"password"`
}

type authResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (c *Client) Authenticate(ctx context.Context, mode models.AuthMode, username, password string) (*models.User, error) {
	var out authResponse
	req := authRequest{Action: mode, Username: username, Password: password}
	if err := c.do(ctx, "auth", http.MethodPost, c.endpoints.Auth, nil, req, &out); err != nil {
		return nil, err
	}
	return &models.User{ID: out.UserID, Username: out.Username, IsAdmin: out.IsAdmin}, nil
}

func (c *Client) ListCategories(ctx context.Context, user models.User) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, "categories", http.MethodGet, c.endpoints.Categories, identity(user), nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, user models.User, draft models.CategoryDraft) error {
	return c.do(ctx, "categories", http.MethodPost, c.endpoints.Categories, identity(user), draft, nil)
}

func (c *Client) ListCards(ctx context.Context, user models.User, groupID *int64) ([]models.WordCard, error) {
	endpoint := c.endpoints.Cards
	if groupID != nil {
		var err error
		endpoint, err = withQuery(endpoint, "groupId", strconv.FormatInt(*groupID, 10))
		if err != nil {
			return nil, err
		}
	}

	var out struct {
		Cards []models.WordCard `json:"cards"`
	}
	if err := c.do(ctx, "cards", http.MethodGet, endpoint, identity(user), nil, &out); err != nil {
		return nil, err
	}
	return out.Cards, nil
}

func (c *Client) CreateCard(ctx context.Context, user models.User, draft models.CardDraft) error {
	return c.do(ctx, "cards", http.MethodPost, c.endpoints.Cards, identity(user), newCardPayload(draft), nil)
}

func (c *Client) UpdateCard(ctx context.Context, user models.User, draft models.CardDraft) error {
	payload := updateCardPayload{cardPayload: newCardPayload(draft), CardID: draft.ID, ID: draft.ID}
	return c.do(ctx, "cards", http.MethodPut, c.endpoints.Cards, identity(user), payload, nil)
}

func (c *Client) SetLearned(ctx context.Context, user models.User, cardID int64, learned bool) error {
	payload := learnedPayload{CardID: cardID, Learned: learned}
	return c.do(ctx, "cards", http.MethodPut, c.endpoints.Cards, identity(user), payload, nil)
}

func (c *Client) DeleteCard(ctx context.Context, user models.User, cardID int64) error {
	payload := deleteCardPayload{CardID: cardID}
	return c.do(ctx, "cards", http.MethodDelete, c.endpoints.Cards, identity(user), payload, nil)
}

func (c *Client) ListGroups(ctx context.Context, user models.User) ([]models.Group, error) {
	endpoint, err := withQuery(c.endpoints.Cards, "resource", "groups")
	if err != nil {
		return nil, err
	}

	var out struct {
		Groups []models.Group `json:"groups"`
	}
	if err := c.do(ctx, "groups", http.MethodGet, endpoint, identity(user), nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, user models.User, draft models.GroupDraft) error {
	return c.do(ctx, "groups", http.MethodPost, c.endpoints.Cards, identity(user), draft, nil)
}

func (c *Client) AddCardsToGroup(ctx context.Context, user models.User, groupID int64, cardIDs []int64) error {
	payload := attachPayload{GroupID: groupID, CardIDs: cardIDs}
	return c.do(ctx, "groups", http.MethodPost, c.endpoints.Cards, identity(user), payload, nil)
}

func (c *Client) DeleteGroup(ctx context.Context, user models.User, groupID int64) error {
	endpoint, err := withQuery(c.endpoints.Cards, "groupId", strconv.FormatInt(groupID, 10))
	if err != nil {
		return err
	}
	return c.do(ctx, "groups", http.MethodDelete, endpoint, identity(user), nil, nil)
}

func (c *Client) Translate(ctx context.Context, russian string) (models.Translation, error) {
	var out models.Translation
	payload := translatePayload{Russian: russian}
	if err := c.do(ctx, "translate", http.MethodPost, c.endpoints.Translate, nil, payload, &out); err != nil {
		return models.Translation{}, err
	}
	return out, nil
}

// ListAccounts fetches the admin roster. The accounts resource only checks
// the admin header.
func (c *Client) ListAccounts(ctx context.Context, user models.User) ([]models.UserAccount, error) {
	headers := identity(user)
	headers.Set("X-Is-Admin", "true")

	var out struct {
		Users []models.UserAccount `json:"users"`
	}
	if err := c.do(ctx, "accounts", http.MethodGet, c.endpoints.Accounts, headers, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) do(ctx context.Context, resource, method, endpoint string, headers http.Header, body, out any) error {
	log := logger.FromContext(ctx).WithPrefix("remote").WithFields(map[string]any{
		"resource": resource,
		"method":   method,
	})

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to encode request body: %v", err)
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return apperrors.NewNetworkError(err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("sending request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("failed to read response: %v", err)
		return apperrors.NewNetworkError(err)
	}

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(raw)
		log.Warn("request rejected: status=%d, error=%q", resp.StatusCode, msg)
		return apperrors.NewRemoteError(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error("failed to decode response: %v", err)
		return apperrors.NewNetworkError(fmt.Errorf("decode %s response: %w", resource, err))
	}
	return nil
}

func identity(user models.User) http.Header {
	h := http.Header{}
	h.Set("X-User-Id", strconv.FormatInt(user.ID, 10))
	h.Set("X-Is-Admin", strconv.FormatBool(user.IsAdmin))
	return h
}

func withQuery(endpoint, key, value string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", apperrors.NewNetworkError(err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
