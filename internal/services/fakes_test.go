package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/models"
)

// fakeUserStore is an in-memory UserStore keyed by email, preserving
// insertion order for List.
type fakeUserStore struct {
	mu             sync.Mutex
	byEmail        map[string]*models.User
	order          []string
	profileMissing bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, common.ErrEmailExists
	}
	user.ID = primitive.NewObjectID()
	f.byEmail[user.Email] = copyUser(user)
	f.order = append(f.order, user.Email)
	return copyUser(user), nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (f *fakeUserStore) GetProfile(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || f.profileMissing {
		return nil, common.ErrUserNotFound
	}
	profile := copyUser(u)
	profile.Password = ""
	return profile, nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return &models.User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
		}
	}
	return nil, common.ErrUserNotFound
}

func (f *fakeUserStore) List(ctx context.Context, skip, take int64) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []*models.User{}
	for i := skip; i < int64(len(f.order)) && int64(len(users)) < take; i++ {
		u := copyUser(f.byEmail[f.order[i]])
		u.Password = ""
		users = append(users, u)
	}
	return users, int64(len(f.order)), nil
}

// fakeMediaStore is an in-memory MediaStore preserving insertion order.
type fakeMediaStore struct {
	mu    sync.Mutex
	docs  map[string]*models.Media
	order []string
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{docs: map[string]*models.Media{}}
}

func copyMedia(m *models.Media) *models.Media {
	c := *m
	if m.DeletedAt != nil {
		at := *m.DeletedAt
		c.DeletedAt = &at
	}
	return &c
}

func (f *fakeMediaStore) Insert(ctx context.Context, media *models.Media) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	media.ID = primitive.NewObjectID()
	f.docs[media.ID.Hex()] = copyMedia(media)
	f.order = append(f.order, media.ID.Hex())
	return copyMedia(media), nil
}

func (f *fakeMediaStore) FindByID(ctx context.Context, id string) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return nil, common.ErrMediaNotFound
	}
	return copyMedia(m), nil
}

func (f *fakeMediaStore) Find(ctx context.Context, limit, offset int64, searchText string) ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Media{}
	var seen int64
	for _, id := range f.order {
		m := f.docs[id]
		if m.DeletedAt != nil {
			continue
		}
		if searchText != "" && !strings.Contains(strings.ToLower(m.FileName), strings.ToLower(searchText)) {
			continue
		}
		if seen < offset {
			seen++
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, copyMedia(m))
	}
	return out, nil
}

func (f *fakeMediaStore) MarkDeleted(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return common.ErrMediaNotFound
	}
	now := time.Now().UTC()
	m.DeletedAt = &now
	return nil
}

func (f *fakeMediaStore) ClearDeleted(ctx context.Context, id string) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok || m.DeletedAt == nil {
		return nil, common.ErrMediaNotFound
	}
	m.DeletedAt = nil
	return copyMedia(m), nil
}

func (f *fakeMediaStore) ApplyUpdate(ctx context.Context, id string, upd models.MediaUpdate) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.docs[id]
	if !ok {
		return nil, common.ErrMediaNotFound
	}
	if upd.FileName != nil {
		m.FileName = *upd.FileName
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.IsPublic != nil {
		m.IsPublic = *upd.IsPublic
	}
	if upd.Tags != nil {
		m.Tags = upd.Tags
	}
	return copyMedia(m), nil
}

func (f *fakeMediaStore) IncrementViewCount(ctx context.Context, sharableID string) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.docs {
		if m.SharableID == sharableID {
			m.ViewCount++
			return copyMedia(m), nil
		}
	}
	return nil, common.ErrMediaNotFound
}

// fakeBackend records upload/delete calls and can be told to fail.
type fakeBackend struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (b *fakeBackend) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	b.uploads = append(b.uploads, fileName)
	return b.URLFor(fileName), nil
}

func (b *fakeBackend) Delete(ctx context.Context, fileName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deletes = append(b.deletes, fileName)
	return nil
}

func (b *fakeBackend) URLFor(fileName string) string {
	return "https://files.test/" + fileName
}
