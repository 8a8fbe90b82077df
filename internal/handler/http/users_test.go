// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUser(t *testing.T) {
	h, m := newTestHandler(t)
	req := models.CreateUserRequest{Email: "alice@example.com", Password: "password123", Name: "Alice"}
	m.users.EXPECT().CreateUser(gomock.Any(), req).Return(alice(), nil)

	rr := serve(t, h, http.MethodPost, "/api/v1/users", req, nil)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "alice@example.com", decodeUser(t, rr).Email)
}

func TestCreateUser_Duplicate(t *testing.T) {
	h, m := newTestHandler(t)
	req := models.CreateUserRequest{Email: "alice@example.com", Password: "password123", Name: "Alice"}
	m.users.EXPECT().CreateUser(gomock.Any(), req).Return(models.User{}, service.ErrEmailAlreadyRegistered)

	rr := serve(t, h, http.MethodPost, "/api/v1/users", req, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already registered", decodeError(t, rr).Detail)
}

func TestListUsers(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   *models.Page
		result     []models.User
		wantStatus int
		wantLen    int
	}{
		{
			name:       "defaults",
			query:      "",
			wantPage:   &models.Page{Offset: 0, Limit: models.DefaultPageLimit},
			result:     []models.User{alice(), bob()},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "explicit paging",
			query:      "?offset=1&limit=1",
			wantPage:   &models.Page{Offset: 1, Limit: 1},
			result:     []models.User{bob()},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:       "empty page is an empty array",
			query:      "?offset=50",
			wantPage:   &models.Page{Offset: 50, Limit: models.DefaultPageLimit},
			result:     nil,
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{name: "negative offset", query: "?offset=-1", wantStatus: http.StatusUnprocessableEntity},
		{name: "non-numeric limit", query: "?limit=ten", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.wantPage != nil {
				m.users.EXPECT().ListUsers(gomock.Any(), *tt.wantPage).Return(tt.result, nil)
			}

			rr := serve(t, h, http.MethodGet, "/api/v1/users"+tt.query, nil, nil)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var users []models.User
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
			assert.Len(t, users, tt.wantLen)
			if tt.wantLen == 0 {
				assert.Equal(t, "[]", rr.Body.String())
			}
		})
	}
}

func TestListUsers_LimitOutOfRange(t *testing.T) {
	h, m := newTestHandler(t)
	m.users.EXPECT().ListUsers(gomock.Any(), models.Page{Limit: 5000}).
		Return(nil, &service.ValidationError{Field: "limit", Reason: "must be between 1 and 1000"})

	rr := serve(t, h, http.MethodGet, "/api/v1/users?limit=5000", nil, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "limit: must be between 1 and 1000", decodeError(t, rr).Detail)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m testMocks)
		wantStatus int
		wantDetail string
	}{
		{
			name: "found",
			path: "/api/v1/users/1",
			setup: func(m testMocks) {
				m.users.EXPECT().GetUser(gomock.Any(), int64(1)).Return(alice(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing",
			path: "/api/v1/users/42",
			setup: func(m testMocks) {
				m.users.EXPECT().GetUser(gomock.Any(), int64(42)).
					Return(models.User{}, fmt.Errorf("%w: %w", service.ErrUserNotFound, store.ErrNoUserWasFound))
			},
			wantStatus: http.StatusNotFound,
			wantDetail: "User not found",
		},
		{
			name:       "non-numeric id",
			path:       "/api/v1/users/abc",
			setup:      func(m testMocks) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "id: must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			tt.setup(m)

			rr := serve(t, h, http.MethodGet, tt.path, nil, nil)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Detail)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	update := models.UserUpdate{Name: ptr("Alice Cooper")}

	tests := []struct {
		name       string
		path       string
		body       any
		setup      func(m testMocks)
		wantStatus int
		wantDetail string
	}{
		{
			name: "owner updates",
			path: "/api/v1/users/1",
			body: update,
			setup: func(m testMocks) {
				updated := alice()
				updated.Name = "Alice Cooper"
				m.users.EXPECT().UpdateUser(gomock.Any(), int64(1), update, alice()).Return(updated, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "other user",
			path: "/api/v1/users/2",
			body: update,
			setup: func(m testMocks) {
				m.users.EXPECT().UpdateUser(gomock.Any(), int64(2), update, alice()).Return(models.User{}, service.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
			wantDetail: "Not enough permissions",
		},
		{
			name: "missing user",
			path: "/api/v1/users/9",
			body: update,
			setup: func(m testMocks) {
				m.users.EXPECT().UpdateUser(gomock.Any(), int64(9), update, alice()).Return(models.User{}, service.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantDetail: "User not found",
		},
		{
			name: "email taken",
			path: "/api/v1/users/1",
			body: models.UserUpdate{Email: ptr("bob@example.com")},
			setup: func(m testMocks) {
				m.users.EXPECT().UpdateUser(gomock.Any(), int64(1), gomock.Any(), alice()).
					Return(models.User{}, service.ErrEmailAlreadyRegistered)
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Email already registered",
		},
		{
			name:       "invalid JSON",
			path:       "/api/v1/users/1",
			body:       `{"name":1`,
			setup:      func(m testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().ResolveSession(gomock.Any(), "alice-token").Return(alice(), nil)
			tt.setup(m)

			rr := serve(t, h, http.MethodPut, tt.path, tt.body, bearer("alice-token"))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "Alice Cooper", decodeUser(t, rr).Name)
			}
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Detail)
			}
		})
	}
}

func TestUpdateUser_RequiresAuth(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(t, h, http.MethodPut, "/api/v1/users/1", models.UserUpdate{Name: ptr("x")}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m testMocks)
		wantStatus int
	}{
		{
			name: "owner deletes",
			path: "/api/v1/users/1",
			setup: func(m testMocks) {
				m.users.EXPECT().DeleteUser(gomock.Any(), int64(1), alice()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "other user",
			path: "/api/v1/users/2",
			setup: func(m testMocks) {
				m.users.EXPECT().DeleteUser(gomock.Any(), int64(2), alice()).Return(service.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "missing user",
			path: "/api/v1/users/9",
			setup: func(m testMocks) {
				m.users.EXPECT().DeleteUser(gomock.Any(), int64(9), alice()).Return(service.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.auth.EXPECT().ResolveSession(gomock.Any(), "alice-token").Return(alice(), nil)
			tt.setup(m)

			rr := serve(t, h, http.MethodDelete, tt.path, nil, bearer("alice-token"))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.Bytes())
			}
		})
	}
}

func TestDeleteUser_NoContentIsNotCompressed(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().ResolveSession(gomock.Any(), "alice-token").Return(alice(), nil)
	m.users.EXPECT().DeleteUser(gomock.Any(), int64(1), alice()).Return(nil)

	headers := bearer("alice-token")
	headers["Accept-Encoding"] = "gzip"
	rr := serve(t, h, http.MethodDelete, "/api/v1/users/1", nil, headers)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Empty(t, rr.Body.Bytes())
}

func TestHandlers_WithoutAuthenticatedUser(t *testing.T) {
	h, _ := newTestHandler(t)

	for name, fn := range map[string]http.HandlerFunc{
		"me":     h.me,
		"update": h.updateUser,
		"delete": h.deleteUser,
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			fn(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query   string
		want    models.Page
		wantErr bool
	}{
		{query: "", want: models.Page{Limit: models.DefaultPageLimit}},
		{query: "offset=10", want: models.Page{Offset: 10, Limit: models.DefaultPageLimit}},
		{query: "limit=0", want: models.Page{Limit: 0}},
		{query: "offset=9223372036854775807", want: models.Page{Offset: math.MaxInt64, Limit: models.DefaultPageLimit}},
		{query: "offset=x", wantErr: true},
		{query: "offset=-1", wantErr: true},
		{query: "offset=9223372036854775808", wantErr: true},
		{query: "offset=18446744073709551615", wantErr: true},
		{query: "limit=-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/users?"+tt.query, nil)

			page, err := pageFromQuery(r)
			if tt.wantErr {
				require.ErrorIs(t, err, service.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
		})
	}
}
