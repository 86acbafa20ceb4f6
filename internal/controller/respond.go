package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

// writeError maps typed service errors to a status; anything untyped is a 500 with fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var (
		campaignNF *appErrors.ErrCampaignNotFound
		categoryNF *appErrors.ErrCategoryNotFound
		messageNF  *appErrors.ErrMessageNotFound
		validation *appErrors.ErrValidation
		badField   *appErrors.ErrUnknownUpdateField
	)
	switch {
	case errors.As(err, &campaignNF), errors.As(err, &categoryNF), errors.As(err, &messageNF):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &validation), errors.As(err, &badField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logrus.WithError(err).Error(fallback)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func intParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil && id > 0
}

func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return id, true
}
