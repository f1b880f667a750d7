package service

import (
	"context"
	"testing"
	"time"

	"github.com/avtostart/avtostart-backend/internal/documents"
	"github.com/avtostart/avtostart-backend/internal/documents/repository"
	"github.com/stretchr/testify/require"
)

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	created, err := svc.Create(ctx, CreateInput{
		Title:       "Устав",
		Description: "Учредительный документ",
		Category:    documents.CategoryCharter,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, documents.StatusActive, created.Status, "status defaults to active")
	require.False(t, created.UploadDate.IsZero())
	require.Equal(t, created.UploadDate, created.LastUpdate)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := NewMemoryService()
	_, err := svc.Create(context.Background(), CreateInput{Title: "x", Category: "diploma"})
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestUpdateChangesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	created, err := svc.Create(ctx, CreateInput{
		Title:       "Правила внутреннего распорядка",
		Description: "desc",
		Category:    documents.CategoryRegulations,
		FileName:    "rules.pdf",
		FileSize:    1024,
	})
	require.NoError(t, err)

	title := "X"
	updated, err := svc.Update(ctx, created.ID, &documents.Update{Title: &title})
	require.NoError(t, err)

	require.Equal(t, "X", updated.Title)
	require.True(t, !updated.LastUpdate.Before(created.LastUpdate))
	// everything else untouched
	require.Equal(t, created.Description, updated.Description)
	require.Equal(t, created.Category, updated.Category)
	require.Equal(t, created.Status, updated.Status)
	require.Equal(t, created.UploadDate, updated.UploadDate)
	require.Equal(t, created.FileName, updated.FileName)
	require.Equal(t, created.FileSize, updated.FileSize)
}

func TestUpdateMissingLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	svc := New(repo)

	_, err := svc.Create(ctx, CreateInput{Title: "a", Category: documents.CategoryReports})
	require.NoError(t, err)

	title := "x"
	_, err = svc.Update(ctx, "nonexistent-id", &documents.Update{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	n, err := repo.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	created, err := svc.Create(ctx, CreateInput{Title: "a", Category: documents.CategoryReports})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAllGroupsOnlyKnownCategories(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	svc := New(repo)

	_, err := svc.Create(ctx, CreateInput{Title: "устав", Category: documents.CategoryCharter})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "лицензия", Category: documents.CategoryLicense})
	require.NoError(t, err)
	// a legacy record with a category outside the known set, written
	// directly to the store
	_, err = repo.Insert(ctx, &documents.Document{Title: "legacy", Category: "diploma", UploadDate: time.Now().UTC()})
	require.NoError(t, err)

	grouped, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, len(documents.KnownCategories()))

	var total int
	seen := map[string]bool{}
	for cat, ds := range grouped {
		require.True(t, cat.Known())
		for _, d := range ds {
			require.Equal(t, cat, d.Category)
			require.False(t, seen[d.ID], "no duplicates across groups")
			seen[d.ID] = true
			total++
		}
	}
	// the grouped view partitions exactly the known-category documents
	require.Equal(t, 2, total)

	// ListByCategory applies no allowlist: the legacy value round-trips
	legacy, err := svc.ListByCategory(ctx, "diploma")
	require.NoError(t, err)
	require.Len(t, legacy, 1)
	require.Equal(t, "legacy", legacy[0].Title)
}

func TestSearchCaseInsensitiveAndEmptyQuery(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	_, err := svc.Create(ctx, CreateInput{Title: "License of the school", Category: documents.CategoryLicense})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "Отчёт", Description: "annual report", Category: documents.CategoryReports})
	require.NoError(t, err)

	upper, err := svc.Search(ctx, "LICENSE")
	require.NoError(t, err)
	lower, err := svc.Search(ctx, "license")
	require.NoError(t, err)
	require.Equal(t, upper, lower)
	// matches the title and the category value itself
	require.Len(t, upper, 1)

	byDesc, err := svc.Search(ctx, "Annual")
	require.NoError(t, err)
	require.Len(t, byDesc, 1)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestStatsCharterScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	_, err := svc.Create(ctx, CreateInput{Title: "Устав", Category: documents.CategoryCharter, Status: documents.StatusActive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "Старый отчёт", Category: documents.CategoryReports, Status: documents.StatusArchived})
	require.NoError(t, err)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, st.TotalDocuments, int64(1))
	require.GreaterOrEqual(t, st.ActiveDocuments, int64(1))
	require.False(t, st.GeneratedAt.IsZero())

	var charter *documents.CategoryCount
	for i := range st.ByCategory {
		if st.ByCategory[i].Category == "charter" {
			charter = &st.ByCategory[i]
		}
	}
	require.NotNil(t, charter)
	require.GreaterOrEqual(t, charter.Count, int64(1))
}

func TestUpdateRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	created, err := svc.Create(ctx, CreateInput{Title: "a", Category: documents.CategoryReports})
	require.NoError(t, err)

	bad := documents.Category("diploma")
	_, err = svc.Update(ctx, created.ID, &documents.Update{Category: &bad})
	require.ErrorIs(t, err, ErrInvalidCategory)
}
