package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geomark/geomark/internal/document"
)

func seed(t *testing.T, m *MemoryRepo, docID, category, description string) *document.Document {
	t.Helper()
	d := &document.Document{
		Lat:         51.5,
		Lon:         -0.1,
		Category:    category,
		Name:        "name-" + docID,
		Description: description,
		DocumentID:  docID,
	}
	require.NoError(t, m.Create(context.Background(), d))
	return d
}

func TestMemoryRepo_CreateAssignsSequentialIDs(t *testing.T) {
	m := NewMemoryRepo()
	a := seed(t, m, "aaaaaaaaaa", "bridge", "north side")
	b := seed(t, m, "bbbbbbbbbb", "tunnel", "south side")
	require.Equal(t, uint(1), a.ID)
	require.Equal(t, uint(2), b.ID)
}

func TestMemoryRepo_CreateDuplicateDocumentID(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m, "aaaaaaaaaa", "bridge", "x")
	err := m.Create(context.Background(), &document.Document{
		Lat: 1, Lon: 2, Category: "c", Name: "n", Description: "d", DocumentID: "aaaaaaaaaa",
	})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryRepo_ListByCategory(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m, "aaaaaaaaaa", "bridge", "x")
	seed(t, m, "bbbbbbbbbb", "tunnel", "y")
	seed(t, m, "cccccccccc", "bridge", "z")

	got, err := m.ListByCategory(context.Background(), "bridge")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = m.ListByCategory(context.Background(), "unknown")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryRepo_SearchDescriptionCaseInsensitive(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m, "aaaaaaaaaa", "bridge", "Cracked support BEAM near pier")
	seed(t, m, "bbbbbbbbbb", "bridge", "fresh paint")

	got, err := m.SearchDescription(context.Background(), "beam")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "aaaaaaaaaa", got[0].DocumentID)

	got, err = m.SearchDescription(context.Background(), "PAINT")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestMemoryRepo_UpdateAndGet(t *testing.T) {
	m := NewMemoryRepo()
	d := seed(t, m, "aaaaaaaaaa", "bridge", "old description")

	d.Name = "renamed"
	d.Description = "new description"
	d.Category = "tunnel"
	require.NoError(t, m.Update(context.Background(), d))

	got, err := m.GetByDocumentID(context.Background(), "aaaaaaaaaa")
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)
	require.Equal(t, "tunnel", got.Category)

	err = m.Update(context.Background(), &document.Document{DocumentID: "zzzzzzzzzz", Name: "n", Description: "d", Category: "c"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_Delete(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m, "aaaaaaaaaa", "bridge", "x")

	require.NoError(t, m.DeleteByDocumentID(context.Background(), "aaaaaaaaaa"))
	_, err := m.GetByDocumentID(context.Background(), "aaaaaaaaaa")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.DeleteByDocumentID(context.Background(), "aaaaaaaaaa"), ErrNotFound)
}

func TestMemoryRepo_ExistsDocumentID(t *testing.T) {
	m := NewMemoryRepo()
	seed(t, m, "aaaaaaaaaa", "bridge", "x")

	ok, err := m.ExistsDocumentID(context.Background(), "aaaaaaaaaa")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.ExistsDocumentID(context.Background(), "zzzzzzzzzz")
	require.NoError(t, err)
	require.False(t, ok)
}
