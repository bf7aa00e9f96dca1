package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"homeserve.backend/internal/domain/entities"
	domainerrors "homeserve.backend/internal/domain/errors"
	"homeserve.backend/internal/infrastructure/models"
)

func seedProvider(t *testing.T, db *gorm.DB) (*ProviderRepository, *entities.Provider) {
	t.Helper()
	repo := NewProviderRepository(db)
	provider := entities.NewProvider(uuid.New(), time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Create(context.Background(), provider))
	return repo, provider
}

func TestProviderRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, provider := seedProvider(t, db)

	got, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.UserID, got.UserID)
	assert.Equal(t, entities.VerificationStatusUnsubmitted, got.Status)
	assert.True(t, got.IsActive)
	assert.Empty(t, got.Documents)
	assert.Empty(t, got.History.Entries())

	byUser, err := repo.GetByUserID(context.Background(), provider.UserID)
	require.NoError(t, err)
	assert.Equal(t, provider.ID, byUser.ID)
}

func TestProviderRepository_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo := NewProviderRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProviderRepository_SaveFullAggregateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, provider := seedProvider(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	_, err := provider.AddDocument(entities.DocumentTypeBusinessRegistration, entities.FileRecord{
		Filename: "reg.pdf", StoragePath: "abc.pdf", UploadDate: now, Size: 1024, MimeType: "application/pdf",
	}, now)
	require.NoError(t, err)
	_, err = provider.AddDocument(entities.DocumentTypePortfolio, entities.FileRecord{
		Filename: "one.jpg", StoragePath: "one-stored.jpg", UploadDate: now, Size: 2048, MimeType: "image/jpeg",
	}, now)
	require.NoError(t, err)
	require.NoError(t, provider.SubmitForReview(now))

	require.NoError(t, repo.Save(context.Background(), provider))

	got, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.VerificationStatusPending, got.Status)
	require.Len(t, got.Documents, 2)
	reg := got.Documents[entities.DocumentTypeBusinessRegistration]
	require.NotNil(t, reg)
	require.Len(t, reg.Files, 1)
	assert.Equal(t, "abc.pdf", reg.Files[0].StoragePath)
	assert.Equal(t, "application/pdf", reg.Files[0].MimeType)

	entries := got.History.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "pending", entries[0].Status)
	assert.False(t, entries[0].Reviewer.Valid)
}

func TestProviderRepository_SavePreservesFileOrder(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, provider := seedProvider(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		_, err := provider.AddDocument(entities.DocumentTypePortfolio, entities.FileRecord{
			Filename: name, StoragePath: "stored-" + name, UploadDate: now, Size: 10, MimeType: "image/jpeg",
		}, now)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(context.Background(), provider))

	got, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	files := got.Documents[entities.DocumentTypePortfolio].Files
	require.Len(t, files, 3)
	assert.Equal(t, "a.jpg", files[0].Filename)
	assert.Equal(t, "b.jpg", files[1].Filename)
	assert.Equal(t, "c.jpg", files[2].Filename)
}

// Audit rows already on disk are never rewritten; a second Save only appends
// the new entries.
func TestProviderRepository_SaveAppendsAuditsOnly(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, provider := seedProvider(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	_, err := provider.AddDocument(entities.DocumentTypeRepresentativeID, entities.FileRecord{
		Filename: "id.png", StoragePath: "id.png", UploadDate: now, Size: 10, MimeType: "image/png",
	}, now)
	require.NoError(t, err)
	require.NoError(t, provider.SubmitForReview(now))
	require.NoError(t, repo.Save(context.Background(), provider))

	fresh, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	require.NoError(t, fresh.Review("Admin", false, "blurry scan", nil, now.Add(time.Hour)))
	require.NoError(t, repo.Save(context.Background(), fresh))

	var count int64
	require.NoError(t, db.Model(&models.VerificationAudit{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	got, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	entries := got.History.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "pending", entries[0].Status)
	assert.Equal(t, "rejected", entries[1].Status)
	assert.Equal(t, "Admin", entries[1].Reviewer.String)
	assert.Equal(t, "blurry scan", entries[1].Notes.String)
}

func TestProviderRepository_SaveNotFound(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo := NewProviderRepository(db)

	err := repo.Save(context.Background(), entities.NewProvider(uuid.New(), time.Now()))
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProviderRepository_ListByStatus(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, pending := seedProvider(t, db)
	_, _ = seedProvider(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	_, err := pending.AddDocument(entities.DocumentTypeBusinessRegistration, entities.FileRecord{
		Filename: "r.pdf", StoragePath: "r.pdf", UploadDate: now, Size: 10, MimeType: "application/pdf",
	}, now)
	require.NoError(t, err)
	require.NoError(t, pending.SubmitForReview(now))
	require.NoError(t, repo.Save(context.Background(), pending))

	got, err := repo.ListByStatus(context.Background(), entities.VerificationStatusPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
	require.Len(t, got[0].History.Entries(), 1)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProviderRepository_SaveStatusNotes(t *testing.T) {
	db := newTestDB(t)
	createProviderTables(t, db)
	repo, provider := seedProvider(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	provider.SetActive(false, "suspended pending investigation", now)
	require.NoError(t, repo.Save(context.Background(), provider))

	got, err := repo.GetByID(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "suspended pending investigation", got.StatusNotes.String)
	assert.Equal(t, entities.VerificationStatusUnsubmitted, got.Status)
}
