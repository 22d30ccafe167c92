package domain

import (
	"strings"
	"time"
	"tracker/pkg/serrors"

	"github.com/google/uuid"
)

// ExternalRefID uniquely identifies an external ingredient reference.
type ExternalRefID uuid.UUID

// String returns the canonical textual form of the id.
func (id ExternalRefID) String() string { return uuid.UUID(id).String() }

// ExternalIngredientRef maps an entry of an external food database onto one
// of the user's ingredients, so repeated imports of the same external food
// reuse the existing ingredient. Unique per (user, provider, external id).
type ExternalIngredientRef struct {
	// ID is the unique identifier of the mapping.
	ID ExternalRefID `json:"id"`
	// UserID is the owner of the mapping.
	UserID UserID `json:"userId"`

	// Provider names the external food database (e.g. "openfoodfacts").
	Provider string `json:"provider"`
	// ExternalID is the food's identifier within the provider.
	ExternalID string `json:"externalId"`
	// IngredientID is the local ingredient the external food maps to.
	IngredientID IngredientID `json:"ingredientId"`

	// CreatedAt is the time the mapping was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewExternalIngredientRef constructs a mapping, validating provider and
// external id are non-empty.
func NewExternalIngredientRef(userID UserID,
	provider, externalID string,
	ingredientID IngredientID) (*ExternalIngredientRef, error) {
	provider = strings.TrimSpace(provider)
	externalID = strings.TrimSpace(externalID)
	if provider == "" || externalID == "" {
		return nil, serrors.With(serrors.ErrValidation, "provider and external id must not be empty")
	}

	return &ExternalIngredientRef{
		ID:           ExternalRefID(uuid.New()),
		UserID:       userID,
		Provider:     provider,
		ExternalID:   externalID,
		IngredientID: ingredientID,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
