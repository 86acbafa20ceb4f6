// internal/errors/errors.go
package appErrors

import "fmt"

// ErrMessageNotFound means an inbound webhook referenced a provider SID we never sent.
type ErrMessageNotFound struct {
    ProviderMessageID string
}

func (e *ErrMessageNotFound) Error() string {
    return fmt.Sprintf("no message found for provider sid %q", e.ProviderMessageID)
}

func NewMessageNotFound(sid string) error {
    return &ErrMessageNotFound{ProviderMessageID: sid}
}

// ErrPersistence wraps a store failure that must surface as a 500.
type ErrPersistence struct {
    Op  string
    Err error
}

func (e *ErrPersistence) Error() string {
    return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error { return e.Err }

func NewPersistence(op string, err error) error {
    return &ErrPersistence{Op: op, Err: err}
}

type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

type ErrCategoryNotFound struct {
    CategoryID int
}

func (e *ErrCategoryNotFound) Error() string {
    return fmt.Sprintf("category with ID %d not found or already deleted", e.CategoryID)
}

func NewCategoryNotFound(id int) error {
    return &ErrCategoryNotFound{CategoryID: id}
}

// ErrUnknownUpdateField is returned when a partial update names a field outside the allowed set.
type ErrUnknownUpdateField struct {
    Field string
}

func (e *ErrUnknownUpdateField) Error() string {
    return fmt.Sprintf("field %q cannot be updated", e.Field)
}

func NewUnknownUpdateField(field string) error {
    return &ErrUnknownUpdateField{Field: field}
}

// ErrValidation is a client input problem.
type ErrValidation struct {
    Msg string
}

func (e *ErrValidation) Error() string { return e.Msg }

func NewValidation(msg string) error {
    return &ErrValidation{Msg: msg}
}
