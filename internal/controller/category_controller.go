package controller

import (
	"encoding/json"
	"net/http"

	"github.com/unclebandit/smsify-backend/internal/service"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func (c *CategoryController) AddCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body struct {
		CampaignID     int      `json:"campaignId"`
		CategoryLabels []string `json:"categoryLabels"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	created, err := c.CategoryService.AddCategories(r.Context(), userID, body.CampaignID, body.CategoryLabels)
	if err != nil {
		writeError(w, err, "Failed to add categorization")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	campaignID, ok := intParam(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	categories, err := c.CategoryService.ListCategories(r.Context(), userID, campaignID)
	if err != nil {
		writeError(w, err, "Server error while retrieving categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (c *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	categoryID, ok := intParam(r, "categoryId")
	if !ok {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var body struct {
		NewLabel string `json:"newLabel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	updated, err := c.CategoryService.UpdateLabel(r.Context(), userID, categoryID, body.NewLabel)
	if err != nil {
		writeError(w, err, "Failed to update category")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	categoryID, ok := intParam(r, "categoryId")
	if !ok {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	deleted, err := c.CategoryService.DeleteCategory(r.Context(), userID, categoryID)
	if err != nil {
		writeError(w, err, "Failed to delete category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Category successfully deleted",
		"category": deleted,
	})
}
