// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	createdUser, err := h.services.UserService.CreateUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", createdUser.ID).Msg("user created")

	if _, err = utils.WriteJSON(w, createdUser, http.StatusCreated); err != nil {
		log.Err(err).Msg("error writing response")
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// an empty page is an empty JSON array, not null
	if users == nil {
		users = []models.User{}
	}

	if _, err = utils.WriteJSON(w, users, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	requester, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.UserUpdate
	if err = utils.DecodeJSON(w, r, &update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(ctx, id, update, requester)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", updatedUser.ID).Msg("user updated")

	if _, err = utils.WriteJSON(w, updatedUser, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing response")
	}
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(ctx, id, requester); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("id", id).Msg("user deleted")

	w.WriteHeader(http.StatusNoContent)
}

func userIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &service.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}

// pageFromQuery reads offset and limit, falling back to the defaults when a
// parameter is absent. offset must fit a signed 64-bit integer; range checks
// on limit are left to the service layer.
func pageFromQuery(r *http.Request) (models.Page, error) {
	page := models.Page{Offset: 0, Limit: models.DefaultPageLimit}
	query := r.URL.Query()

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			return models.Page{}, &service.ValidationError{Field: "offset", Reason: "must be a non-negative integer"}
		}
		page.Offset = uint64(offset)
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.Page{}, &service.ValidationError{Field: "limit", Reason: "must be a positive integer"}
		}
		page.Limit = limit
	}

	return page, nil
}
