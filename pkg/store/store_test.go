package store

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/justify"
)

func sampleGallery(name string) Gallery {
	return Gallery{
		Name: name,
		Items: []jio.ItemSpec{
			{ID: "a", Width: 120, Height: 80},
			{ID: "b", Width: 60, Height: 80},
		},
	}
}

// runStoreTests exercises the Store contract against any backend.
func runStoreTests(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		created, err := s.Create(ctx, sampleGallery("  holiday  "))
		require.NoError(t, err)
		assert.NoError(t, errors.ValidateGalleryID(created.ID))
		assert.Equal(t, "holiday", created.Name)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, got.Name)
		assert.Equal(t, created.Items, got.Items)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.NewString())
		assert.True(t, errors.Is(err, errors.ErrCodeGalleryNotFound), "error = %v", err)
	})

	t.Run("get invalid id", func(t *testing.T) {
		_, err := s.Get(ctx, "not-a-uuid")
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidID), "error = %v", err)
	})

	t.Run("create invalid", func(t *testing.T) {
		tests := []struct {
			name string
			g    Gallery
		}{
			{"empty name", sampleGallery("   ")},
			{"long name", sampleGallery(strings.Repeat("x", MaxNameLength+1))},
			{"no items", Gallery{Name: "empty"}},
			{"bad item", Gallery{Name: "bad", Items: []jio.ItemSpec{{Width: -1, Height: 1}}}},
		}
		for _, tt := range tests {
			_, err := s.Create(ctx, tt.g)
			assert.True(t, errors.IsValidation(err), "%s: error = %v", tt.name, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		created, err := s.Create(ctx, sampleGallery("temp"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))
		_, err = s.Get(ctx, created.ID)
		assert.True(t, errors.IsNotFound(err))

		err = s.Delete(ctx, created.ID)
		assert.True(t, errors.Is(err, errors.ErrCodeGalleryNotFound), "second delete error = %v", err)
	})

	t.Run("list limit", func(t *testing.T) {
		for i := range 3 {
			_, err := s.Create(ctx, sampleGallery("list-"+string(rune('a'+i))))
			require.NoError(t, err)
		}
		got, err := s.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, sampleGallery(name))
		require.NoError(t, err)
	}

	got, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Name)
	assert.Equal(t, "first", got[2].Name)
}

func TestMemoryStoreCopiesItems(t *testing.T) {
	s := NewMemoryStore()
	g := sampleGallery("copy")
	created, err := s.Create(context.Background(), g)
	require.NoError(t, err)

	g.Items[0].Width = 999
	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Items[0].Width)
}

func TestGalleryDocument(t *testing.T) {
	snap := true
	g := sampleGallery("doc")
	g.Settings = &jio.SettingsSpec{Snap: &snap}

	doc := g.Document()
	assert.Len(t, doc.Items, 2)
	assert.True(t, doc.ResolveSettings(justify.DefaultSettings()).Snap)
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "error = %v", err)
}

// TestMongoStore runs against a live server when JUSTIFY_TEST_MONGO_URI is set.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("JUSTIFY_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("JUSTIFY_TEST_MONGO_URI not set")
	}

	s, err := NewMongoStore(context.Background(), MongoConfig{
		URI:        uri,
		Database:   "justify_test",
		Collection: "galleries_" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.coll.Drop(context.Background())
		_ = s.Close()
	})

	runStoreTests(t, s)
}
