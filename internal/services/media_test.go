package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/models"
)

func uploadTestFile(t *testing.T, svc *MediaService, fileName string) *models.Media {
	t.Helper()
	media, err := svc.Upload(context.Background(), UploadMedia{
		FileName:    fileName,
		ContentType: "image/jpeg",
		IsPublic:    true,
	}, []byte("bytes"))
	require.NoError(t, err)
	return media
}

func TestUploadCreatesRecordAfterBackend(t *testing.T) {
	t.Parallel()

	store := newFakeMediaStore()
	backend := &fakeBackend{}
	svc := NewMediaService(store, backend)

	media := uploadTestFile(t, svc, "cat.jpg")
	require.False(t, media.ID.IsZero())
	require.NotEmpty(t, media.SharableID)
	require.Equal(t, "https://files.test/cat.jpg", media.URL)
	require.Equal(t, int64(0), media.ViewCount)
	require.Nil(t, media.DeletedAt)
	require.Equal(t, []string{"cat.jpg"}, backend.uploads)
}

func TestUploadBackendFailureLeavesNoRecord(t *testing.T) {
	t.Parallel()

	store := newFakeMediaStore()
	backend := &fakeBackend{uploadErr: errors.New("backend down")}
	svc := NewMediaService(store, backend)

	_, err := svc.Upload(context.Background(), UploadMedia{FileName: "cat.jpg"}, []byte("bytes"))
	require.Error(t, err)
	require.Empty(t, store.order)
}

func TestSharableIDsAreUnique(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	a := uploadTestFile(t, svc, "a.jpg")
	b := uploadTestFile(t, svc, "b.jpg")
	require.NotEqual(t, a.SharableID, b.SharableID)
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeMediaStore()
	backend := &fakeBackend{}
	svc := NewMediaService(store, backend)

	media := uploadTestFile(t, svc, "cat.jpg")
	id := media.ID.Hex()

	require.NoError(t, svc.SoftDelete(context.Background(), id))
	require.Equal(t, []string{"cat.jpg"}, backend.deletes)

	hidden, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, hidden.DeletedAt)

	restored, err := svc.Restore(context.Background(), id)
	require.NoError(t, err)
	require.Nil(t, restored.DeletedAt)
	require.Equal(t, media.ID, restored.ID)
	require.Equal(t, media.SharableID, restored.SharableID)
	require.Equal(t, media.FileName, restored.FileName)

	// Restore never touches the backend: the delete is observed once.
	require.Equal(t, []string{"cat.jpg"}, backend.deletes)
}

func TestRestoreActiveRecordFails(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	media := uploadTestFile(t, svc, "cat.jpg")
	_, err := svc.Restore(context.Background(), media.ID.Hex())
	require.ErrorIs(t, err, common.ErrMediaNotFound)
}

func TestSoftDeleteBackendFailureKeepsRecordActive(t *testing.T) {
	t.Parallel()

	store := newFakeMediaStore()
	backend := &fakeBackend{deleteErr: errors.New("backend down")}
	svc := NewMediaService(store, backend)

	media := uploadTestFile(t, svc, "cat.jpg")

	err := svc.SoftDelete(context.Background(), media.ID.Hex())
	require.Error(t, err)

	got, err := svc.Get(context.Background(), media.ID.Hex())
	require.NoError(t, err)
	require.Nil(t, got.DeletedAt)
}

func TestSoftDeleteMissingRecord(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	svc := NewMediaService(newFakeMediaStore(), backend)

	err := svc.SoftDelete(context.Background(), "656e6f2d737563682d696431")
	require.ErrorIs(t, err, common.ErrMediaNotFound)
	require.Empty(t, backend.deletes)
}

func TestViewCountIncrementsOnlyViaSharableID(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	media := uploadTestFile(t, svc, "cat.jpg")

	for want := int64(1); want <= 3; want++ {
		got, err := svc.GetBySharableID(context.Background(), media.SharableID)
		require.NoError(t, err)
		require.Equal(t, want, got.ViewCount)
	}

	// A plain Get observes the count but never changes it.
	got, err := svc.Get(context.Background(), media.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ViewCount)

	got, err = svc.Get(context.Background(), media.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ViewCount)
}

func TestGetBySharableIDMissing(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	_, err := svc.GetBySharableID(context.Background(), "no-such-sharable")
	require.ErrorIs(t, err, common.ErrMediaNotFound)
}

func TestListFiltersAndExcludesDeleted(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	cat := uploadTestFile(t, svc, "cat.jpg")
	uploadTestFile(t, svc, "CAT-photo.png")
	uploadTestFile(t, svc, "dog.jpg")
	deleted := uploadTestFile(t, svc, "catalogue.pdf")
	require.NoError(t, svc.SoftDelete(context.Background(), deleted.ID.Hex()))

	results, err := svc.List(context.Background(), 10, 0, "cat")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, cat.ID, results[0].ID)
	require.Equal(t, "CAT-photo.png", results[1].FileName)

	all, err := svc.List(context.Background(), 10, 0, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	limited, err := svc.List(context.Background(), 2, 0, "")
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestUpdateMergesProvidedFieldsOnly(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	media := uploadTestFile(t, svc, "cat.jpg")

	desc := "a very good cat"
	updated, err := svc.Update(context.Background(), media.ID.Hex(), models.MediaUpdate{
		Description: &desc,
	})
	require.NoError(t, err)
	require.Equal(t, "a very good cat", updated.Description)
	require.Equal(t, "cat.jpg", updated.FileName)
	require.True(t, updated.IsPublic)
	require.Equal(t, media.SharableID, updated.SharableID)
}

func TestUpdateMissingRecord(t *testing.T) {
	t.Parallel()

	svc := NewMediaService(newFakeMediaStore(), &fakeBackend{})

	desc := "nope"
	_, err := svc.Update(context.Background(), "656e6f2d737563682d696431", models.MediaUpdate{Description: &desc})
	require.ErrorIs(t, err, common.ErrMediaNotFound)
}
