// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/go-resty/resty/v2"
)

const apiPrefix = "/api/v1"

type httpUserServiceClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
}

// NewHTTPUserServiceClient constructs the REST implementation of
// [UserServiceClient]. address may omit the scheme, in which case http is
// assumed.
func NewHTTPUserServiceClient(address string, timeout time.Duration) (UserServiceClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid user service address: %w", err)
	}

	return &httpUserServiceClient{client: utils.NewHTTPClient(baseURL, timeout)}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpUserServiceClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpUserServiceClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpUserServiceClient) Register(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post(apiPrefix + "/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpUserServiceClient) Login(ctx context.Context, req models.LoginRequest) (models.AccessTokenResponse, error) {
	var token models.AccessTokenResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&token).
		Post(apiPrefix + "/auth/login")
	if err != nil {
		return models.AccessTokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccessTokenResponse{}, err
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

func (h *httpUserServiceClient) Me(ctx context.Context) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get(apiPrefix + "/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpUserServiceClient) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post(apiPrefix + "/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpUserServiceClient) ListUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	var users []models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("offset", strconv.FormatUint(page.Offset, 10)).
		SetQueryParam("limit", strconv.FormatUint(page.Limit, 10)).
		SetResult(&users).
		Get(apiPrefix + "/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpUserServiceClient) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&user).
		Get(apiPrefix + "/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpUserServiceClient) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(update).
		SetResult(&user).
		Put(apiPrefix + "/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpUserServiceClient) DeleteUser(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(apiPrefix + "/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpUserServiceClient) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

func (h *httpUserServiceClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
