package dto

import (
	"github.com/tallybooks/tally_books_app/internal/core/domain"
)

// CreateCounterpartyRequest is the payload for creating a vendor or client.
type CreateCounterpartyRequest struct {
	Kind  domain.CounterpartyKind `json:"kind" binding:"required,oneof=VENDOR CLIENT"`
	Name  string                  `json:"name" binding:"required"`
	Email string                  `json:"email,omitempty" binding:"omitempty,email"`
	Notes string                  `json:"notes,omitempty"`
}

// UpdateCounterpartyRequest is the payload for editing a counterparty.
type UpdateCounterpartyRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Notes  *string `json:"notes,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// MergeCounterpartiesRequest merges the secondaries into the primary.
type MergeCounterpartiesRequest struct {
	PrimaryID    string   `json:"primaryID" binding:"required"`
	SecondaryIDs []string `json:"secondaryIDs" binding:"required,min=1"`
}

// MergeCounterpartiesResponse reports the outcome of a merge.
type MergeCounterpartiesResponse struct {
	RepointedCount int64 `json:"repointedCount"`
}

// CounterpartyResponse is the wire representation of a vendor or client.
type CounterpartyResponse struct {
	CounterpartyID string  `json:"counterpartyID"`
	Kind           string  `json:"kind"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Active         bool    `json:"active"`
	MergedIntoID   *string `json:"mergedIntoID,omitempty"`
}

// ListCounterpartiesResponse is a listing of vendors and/or clients.
type ListCounterpartiesResponse struct {
	Counterparties []CounterpartyResponse `json:"counterparties"`
}

// ToCounterpartyResponse converts a domain Counterparty to its wire form.
func ToCounterpartyResponse(cp *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		Kind:           string(cp.Kind),
		Name:           cp.Name,
		Email:          cp.Email,
		Notes:          cp.Notes,
		Active:         cp.Active,
		MergedIntoID:   cp.MergedIntoID,
	}
}

// ToCounterpartyResponses converts a slice of domain Counterparties to wire form.
func ToCounterpartyResponses(cps []domain.Counterparty) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(cps))
	for i := range cps {
		responses[i] = ToCounterpartyResponse(&cps[i])
	}
	return responses
}
