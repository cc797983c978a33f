// Package store persists galleries: named item sets that the HTTP server can
// lay out at any width on request.
//
// Two backends implement [Store]: [MemoryStore] for tests and single-process
// use, and [MongoStore] for shared deployments.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
)

// DefaultListLimit is the page size used when List is called with limit <= 0.
const DefaultListLimit = 50

// MaxNameLength bounds gallery names.
const MaxNameLength = 200

// Gallery is a stored item set.
type Gallery struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Items     []jio.ItemSpec    `json:"items" bson:"items"`
	Settings  *jio.SettingsSpec `json:"settings,omitempty" bson:"settings,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
}

// Document returns the gallery as a layout document.
func (g Gallery) Document() *jio.Document {
	return &jio.Document{Items: g.Items, Settings: g.Settings}
}

// Store persists galleries.
type Store interface {
	// Create validates g, assigns it a new ID and creation time, and stores it.
	Create(ctx context.Context, g Gallery) (Gallery, error)

	// Get returns the gallery with the given ID, or an error with code
	// GALLERY_NOT_FOUND.
	Get(ctx context.Context, id string) (Gallery, error)

	// List returns up to limit galleries, newest first.
	List(ctx context.Context, limit int) ([]Gallery, error)

	// Delete removes a gallery. Deleting a missing gallery returns
	// GALLERY_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// prepare validates g and fills in the server-assigned fields.
func prepare(g Gallery, now time.Time) (Gallery, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return Gallery{}, errors.New(errors.ErrCodeInvalidInput, "gallery name is required")
	}
	if len(g.Name) > MaxNameLength {
		return Gallery{}, errors.New(errors.ErrCodeInvalidInput, "gallery name too long: %d characters (max %d)", len(g.Name), MaxNameLength)
	}
	if len(g.Items) == 0 {
		return Gallery{}, errors.New(errors.ErrCodeInvalidInput, "gallery must have at least one item")
	}
	if err := errors.ValidateItems(g.Document().LayoutItems()); err != nil {
		return Gallery{}, err
	}

	g.ID = uuid.NewString()
	g.CreatedAt = now.UTC().Truncate(time.Millisecond)
	return g, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeGalleryNotFound, "gallery %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
