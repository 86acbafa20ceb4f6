package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "sort"
    "strings"

    appErrors "github.com/unclebandit/smsify-backend/internal/errors"
    "github.com/unclebandit/smsify-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    GetOwned(ctx context.Context, userID, campaignID int) (*model.Campaign, error)
    Update(ctx context.Context, userID, campaignID int, updates map[string]any) (*model.Campaign, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

// campaignUpdateColumns is the complete set of fields a partial update may touch.
// Keys are the JSON field names accepted from clients.
var campaignUpdateColumns = map[string]string{
    "name":          "name",
    "description":   "description",
    "status":        "status",
    "phoneNumberId": "phone_number_id",
}

const campaignColumns = `campaign_id, user_id, phone_number_id, name, description, status, created_at, deleted_at`

func scanCampaign(row interface{ Scan(...any) error }, c *model.Campaign) error {
    return row.Scan(&c.ID, &c.UserID, &c.PhoneNumberID, &c.Name, &c.Description, &c.Status, &c.CreatedAt, &c.DeletedAt)
}

// GetOwned returns an active campaign only if it belongs to userID.
func (r *CampaignRepository) GetOwned(ctx context.Context, userID, campaignID int) (*model.Campaign, error) {
    query := `SELECT ` + campaignColumns + ` FROM campaigns
        WHERE campaign_id = $1 AND user_id = $2 AND deleted_at IS NULL`
    var c model.Campaign
    if err := scanCampaign(r.DB.QueryRowContext(ctx, query, campaignID, userID), &c); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, appErrors.NewCampaignNotFound(campaignID)
        }
        return nil, fmt.Errorf("get campaign: %w", err)
    }
    return &c, nil
}

// BuildCampaignUpdate turns a client update into a SET clause. Every key must be in
// campaignUpdateColumns; placeholders start at firstArg. Columns are emitted in sorted
// key order so the statement is deterministic.
func BuildCampaignUpdate(updates map[string]any, firstArg int) (string, []any, error) {
    if len(updates) == 0 {
        return "", nil, appErrors.NewValidation("no fields to update")
    }

    keys := make([]string, 0, len(updates))
    for k := range updates {
        if _, ok := campaignUpdateColumns[k]; !ok {
            return "", nil, appErrors.NewUnknownUpdateField(k)
        }
        keys = append(keys, k)
    }
    sort.Strings(keys)

    setParts := make([]string, 0, len(keys))
    args := make([]any, 0, len(keys))
    argPos := firstArg
    for _, k := range keys {
        setParts = append(setParts, fmt.Sprintf("%s = $%d", campaignUpdateColumns[k], argPos))
        args = append(args, updates[k])
        argPos++
    }
    return strings.Join(setParts, ", "), args, nil
}

func (r *CampaignRepository) Update(ctx context.Context, userID, campaignID int, updates map[string]any) (*model.Campaign, error) {
    set, args, err := BuildCampaignUpdate(updates, 3)
    if err != nil {
        return nil, err
    }

    query := `UPDATE campaigns SET ` + set + `
        WHERE campaign_id = $1 AND user_id = $2 AND deleted_at IS NULL
        RETURNING ` + campaignColumns
    args = append([]any{campaignID, userID}, args...)

    var c model.Campaign
    if err := scanCampaign(r.DB.QueryRowContext(ctx, query, args...), &c); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, appErrors.NewCampaignNotFound(campaignID)
        }
        return nil, fmt.Errorf("update campaign: %w", err)
    }
    return &c, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
