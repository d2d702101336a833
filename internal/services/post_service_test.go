package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
	"github.com/class-union/union-server/internal/validator"
)

type mockPostRepo struct {
	posts   map[string]*models.BlogPost
	deleted []string
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if m.posts == nil {
		m.posts = make(map[string]*models.BlogPost)
	}
	m.posts[post.ID.Hex()] = post
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *mockPostRepo) List(ctx context.Context, filters repositories.ContentFilters) ([]*models.BlogPost, error) {
	out := make([]*models.BlogPost, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// failingFileRepo fails blob deletes to exercise the swallow path.
type failingFileRepo struct {
	mockFileRepo
}

func (f *failingFileRepo) Delete(ctx context.Context, id string) error {
	return errors.New("blob store down")
}

type postTestRepo struct {
	baseMockRepo
	posts *mockPostRepo
	files repositories.FileRepository
}

func (r *postTestRepo) Post() repositories.PostRepository { return r.posts }
func (r *postTestRepo) File() repositories.FileRepository { return r.files }

func newPostFixture(files repositories.FileRepository) (*postTestRepo, PostService) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := &postTestRepo{posts: &mockPostRepo{}, files: files}
	return repo, NewPostService(repo, logger, validator.New())
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps the author", func(t *testing.T) {
		_, service := newPostFixture(&mockFileRepo{})

		post, err := service.Create(ctx, "author-1", CreatePostRequest{
			Title:   "First post",
			Content: "Hello everyone",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if post.AuthorID != "author-1" {
			t.Errorf("AuthorID = %q", post.AuthorID)
		}
		if post.ID.IsZero() {
			t.Error("Expected an assigned ID")
		}
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, service := newPostFixture(&mockFileRepo{})

		_, err := service.Create(ctx, "author-1", CreatePostRequest{Content: "body only"})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected ErrValidationFailed, got %v", err)
		}
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record then blob", func(t *testing.T) {
		files := &mockFileRepo{}
		repo, service := newPostFixture(files)

		post, err := service.Create(ctx, "author-1", CreatePostRequest{
			Title:   "With attachment",
			Content: "body",
			FileID:  "blob-1",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := service.Delete(ctx, post.ID.Hex()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(repo.posts.deleted) != 1 {
			t.Errorf("Record deletes = %v", repo.posts.deleted)
		}
		if len(files.deleted) != 1 || files.deleted[0] != "blob-1" {
			t.Errorf("Blob deletes = %v", files.deleted)
		}
	})

	t.Run("blob failure does not fail the delete", func(t *testing.T) {
		repo, service := newPostFixture(&failingFileRepo{})

		post, err := service.Create(ctx, "author-1", CreatePostRequest{
			Title:   "Orphan blob",
			Content: "body",
			FileID:  "blob-2",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := service.Delete(ctx, post.ID.Hex()); err != nil {
			t.Fatalf("Delete should swallow blob failure, got %v", err)
		}
		if _, ok := repo.posts.posts[post.ID.Hex()]; ok {
			t.Error("Record still present")
		}
	})

	t.Run("post without blob skips blob delete", func(t *testing.T) {
		files := &mockFileRepo{}
		_, service := newPostFixture(files)

		post, err := service.Create(ctx, "author-1", CreatePostRequest{
			Title:   "No attachment",
			Content: "body",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := service.Delete(ctx, post.ID.Hex()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if len(files.deleted) != 0 {
			t.Errorf("Unexpected blob deletes: %v", files.deleted)
		}
	})

	t.Run("missing post returns not found", func(t *testing.T) {
		_, service := newPostFixture(&mockFileRepo{})

		err := service.Delete(ctx, primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
