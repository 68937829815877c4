package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/internal/media"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

var errDatastoreDown = errors.New("datastore unreachable")

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

type fixture struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	tech, life model.Category
}

// newFixture seeds two categories and a mix of published/draft posts.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	f := &fixture{
		posts:      repository.NewPostRepository(db),
		categories: repository.NewCategoryRepository(db),
		tech:       model.Category{Name: "tech"},
		life:       model.Category{Name: "life"},
	}
	ctx := context.Background()
	require.NoError(t, f.categories.Create(ctx, &f.tech))
	require.NoError(t, f.categories.Create(ctx, &f.life))

	for _, p := range []model.Post{
		{Title: "tech 2024-01", Published: true, CategoryID: f.tech.ID, PostDate: date(2024, 1, 1)},
		{Title: "tech draft 2024-02", Published: false, CategoryID: f.tech.ID, PostDate: date(2024, 2, 1)},
		{Title: "life 2022-12", Published: true, CategoryID: f.life.ID, PostDate: date(2022, 12, 31)},
		{Title: "life 2023-01", Published: true, CategoryID: f.life.ID, PostDate: date(2023, 1, 1)},
		{Title: "life draft 2021", Published: false, CategoryID: f.life.ID, PostDate: date(2021, 5, 5)},
	} {
		p := p
		require.NoError(t, f.posts.Create(ctx, &p))
	}
	return f
}

func titles(ps []model.Post) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

// stubPosts is a PostQuerier whose answers are fixed per test.
type stubPosts struct {
	list    []model.Post
	listErr error
	byID    map[int64]model.Post
	byIDErr error
}

func (s *stubPosts) ListPublished(context.Context) ([]model.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return model.PostFilter{PublishedOnly: true}.Apply(s.list), nil
}

func (s *stubPosts) ListPublishedByCategory(_ context.Context, id int64) ([]model.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return model.PostFilter{PublishedOnly: true, CategoryID: &id}.Apply(s.list), nil
}

func (s *stubPosts) GetByID(_ context.Context, id int64) (*model.Post, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return &p, nil
}

type stubCategories struct {
	list []model.Category
	err  error
}

func (s *stubCategories) List(context.Context) ([]model.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

// fakeMedia records uploads; fail makes Put return media.ErrUpload.
type fakeMedia struct {
	mu      sync.Mutex
	puts    []media.Upload
	removed []string
	fail    bool
}

func (m *fakeMedia) Put(_ context.Context, u media.Upload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", media.ErrUpload
	}
	m.puts = append(m.puts, u)
	return "https://cdn.example.com/" + u.Filename, nil
}

func (m *fakeMedia) Remove(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, url)
	return nil
}

type orphanRecorder struct{ urls []string }

func (o *orphanRecorder) Enqueue(url string) bool {
	o.urls = append(o.urls, url)
	return true
}

// failingPosts wraps a PostRepository and fails Create and List.
type failingPosts struct {
	repository.PostRepository
}

func (failingPosts) Create(context.Context, *model.Post) error { return errDatastoreDown }

func (failingPosts) Delete(context.Context, int64) error { return errDatastoreDown }

func (failingPosts) List(context.Context, model.PostFilter) ([]model.Post, error) {
	return nil, errDatastoreDown
}
