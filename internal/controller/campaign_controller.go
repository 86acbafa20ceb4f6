// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/unclebandit/smsify-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

// UpdateCampaign applies a partial update; only name, description, status and phoneNumberId are accepted.
func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
    userID, ok := currentUser(w, r)
    if !ok {
        return
    }
    campaignID, ok := intParam(r, "campaignId")
    if !ok {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    var updates map[string]any
    if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if len(updates) == 0 {
        writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No update data provided"})
        return
    }

    campaign, err := c.CampaignService.UpdateCampaign(r.Context(), userID, campaignID, updates)
    if err != nil {
        writeError(w, err, "Server error while updating campaign")
        return
    }
    writeJSON(w, http.StatusOK, campaign)
}
