// Package clients wraps the REST contracts of the backend API service.
// Every business operation lives behind these calls; this tier only
// renders the results.
package clients

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

	"go.uber.org/zap"

	"flipvault-web/apperrors"
	"flipvault-web/config"
	"flipvault-web/metrics"
	"flipvault-web/models"
)

type Backend struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
	log          *zap.Logger
}

func NewBackend(cfg config.BackendConfig, log *zap.Logger) *Backend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Backend{
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
		httpClient:   &http.Client{Timeout: timeout},
		log:          log,
	}
}

// errorBody is the shape FastAPI-style services use for failures.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (b *Backend) doJSON(ctx context.Context, op, method, path string, body, out interface{}, privileged bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeValidationFailure, "encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetworkFailure, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if privileged {
		if b.serviceToken == "" {
			return apperrors.New(apperrors.CodeNotConfigured, "backend service token is not set")
		}
		req.Header.Set("Authorization", "Bearer "+b.serviceToken)
	}

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		return apperrors.Wrap(apperrors.CodeNetworkFailure, op, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		detail := eb.Detail
		if detail == "" {
			detail = eb.Message
		}
		if detail == "" {
			detail = resp.Status
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return apperrors.New(apperrors.CodeAuthFailure, detail)
		case resp.StatusCode == http.StatusBadRequest:
			return apperrors.New(apperrors.CodeValidationFailure, detail)
		default:
			return apperrors.New(apperrors.CodeNetworkFailure, fmt.Sprintf("%s: %s", op, detail))
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrap(apperrors.CodeNetworkFailure, op+": malformed response", err)
		}
	}
	return nil
}

// --- auth ---

type LoginResult struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan"`
}

func (b *Backend) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	err := b.doJSON(ctx, "login", http.MethodPost, "/login",
		map[string]string{"username": username, "password": password}, &out, false)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) Register(ctx context.Context, username, password string) error {
	return b.doJSON(ctx, "register", http.MethodPost, "/register",
		map[string]string{"username": username, "password": password}, nil, false)
}

func (b *Backend) AdminLogin(ctx context.Context, username, password string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := b.doJSON(ctx, "admin_login", http.MethodPost, "/admin-login",
		map[string]string{"username": username, "password": password}, &out, false)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

// --- plans & subscriptions ---

func (b *Backend) GetUserPlan(ctx context.Context, username string) (string, error) {
	var out struct {
		Plan string `json:"plan"`
	}
	err := b.doJSON(ctx, "get_user_plan", http.MethodGet, "/user/plan/"+url.PathEscape(username), nil, &out, false)
	if err != nil {
		return "", err
	}
	if out.Plan == "" {
		return "", apperrors.New(apperrors.CodeNetworkFailure, "get_user_plan: empty plan in response")
	}
	return out.Plan, nil
}

// PlanUpdate is the backend's response to an admin plan change.
type PlanUpdate struct {
	Username  string `json:"username"`
	Plan      string `json:"plan"`
	UpdatedAt string `json:"updated_at"`
}

func (b *Backend) UpdateUserPlan(ctx context.Context, userID, plan string) (*PlanUpdate, error) {
	var out PlanUpdate
	err := b.doJSON(ctx, "update_user_plan", http.MethodPut, "/users/"+url.PathEscape(userID)+"/plan",
		map[string]string{"plan": plan}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) CheckSubscription(ctx context.Context) (string, error) {
	var out struct {
		Plan string `json:"plan"`
	}
	err := b.doJSON(ctx, "check_subscription", http.MethodGet, "/check-subscription", nil, &out, true)
	if err != nil {
		return "", err
	}
	return out.Plan, nil
}

func (b *Backend) CreateCheckoutSession(ctx context.Context, plan, username string) (string, error) {
	var out struct {
		SessionID string `json:"sessionId"`
	}
	err := b.doJSON(ctx, "create_checkout_session", http.MethodPost, "/create-checkout-session",
		map[string]string{"plan": plan, "username": username}, &out, false)
	if err != nil {
		return "", err
	}
	return out.SessionID, nil
}

func (b *Backend) CancelSubscription(ctx context.Context) error {
	return b.doJSON(ctx, "cancel_subscription", http.MethodPost, "/cancel-subscription", nil, nil, true)
}

// --- catalog ---

func (b *Backend) GetProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var out []models.Product
	path := fmt.Sprintf("/products?skip=%d&limit=%d", skip, limit)
	if err := b.doJSON(ctx, "get_products", http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := b.doJSON(ctx, "get_product", http.MethodGet, "/products/"+url.PathEscape(id), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	path := "/search/?query=" + url.QueryEscape(query)
	if err := b.doJSON(ctx, "search_products", http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) CreateProduct(ctx context.Context, name, imageURL string) (*models.Product, error) {
	var out models.Product
	err := b.doJSON(ctx, "create_product", http.MethodPost, "/products/",
		map[string]string{"name": name, "image_url": imageURL}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) DeleteProduct(ctx context.Context, id string) error {
	return b.doJSON(ctx, "delete_product", http.MethodDelete, "/products/"+url.PathEscape(id)+"/delete", nil, nil, true)
}

func (b *Backend) ScrapeProducts(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := b.doJSON(ctx, "scrape_products", http.MethodPost, "/products/scrape", nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (b *Backend) ScrapeProduct(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := b.doJSON(ctx, "scrape_product", http.MethodPost, "/products/scrape/"+url.PathEscape(id), nil, &out, true); err != nil {
		return "", err
	}
	return out.Message, nil
}

// --- admin ---

func (b *Backend) GetUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := b.doJSON(ctx, "get_users", http.MethodGet, "/users", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) DeleteUser(ctx context.Context, id string) error {
	return b.doJSON(ctx, "delete_user", http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, true)
}
