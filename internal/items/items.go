// Package items implements the achievement items domain: the persisted Item
// model, payload validation, the business-rule service, and ownership-scoped
// repositories over the document store.
//
// Every operation is owner-scoped: an item is visible, updatable, and
// deletable only by the subject that created it. Writes that match no owned
// document report a zero-affected outcome rather than an error, so callers
// cannot distinguish "not yours" from "does not exist".
package items

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is the sole persisted entity.
type Item struct {
	// ID is the store-generated identifier, assigned at creation and
	// immutable thereafter.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Name is the item's non-empty display name.
	Name string `bson:"name" json:"name"`

	// Description is optional free text.
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Owner is the subject identifier of the authenticated creator.
	// Set once at creation, never reassigned.
	Owner string `bson:"owner" json:"owner"`

	// Completed marks the item as done. Defaults to false at creation.
	Completed bool `bson:"completed" json:"completed"`

	// CreatedAt is set exactly once, at creation.
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// UpdatedAt is set at creation and reset on every successful update.
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateDraft is a validated creation payload. Owner and timestamps are
// never part of the draft; the service assigns them.
type CreateDraft struct {
	Name        string
	Description string

	// Completed is nil when the payload omitted the flag; the service
	// defaults it to false.
	Completed *bool
}

// UpdateDraft is a validated partial-update payload. Nil fields were absent
// from the payload and stay untouched. An all-nil draft is a valid no-op
// update (it still bumps UpdatedAt on a matched document).
type UpdateDraft struct {
	Name        *string
	Description *string
	Completed   *bool
}

// Patch is the explicit set of fields an update writes. Building it is the
// single place where partial-update merging happens: only non-nil fields are
// written, plus the fresh UpdatedAt stamp. CreatedAt and Owner are never
// part of a patch.
type Patch struct {
	Name        *string
	Description *string
	Completed   *bool
	UpdatedAt   time.Time
}

// UpdateResult reports the match/modify outcome of an update.
// Matched == 0 means no owned document had the given identifier.
type UpdateResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// DeleteResult reports the match/delete outcome of a delete.
// Deleted == 0 means no owned document had the given identifier.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
