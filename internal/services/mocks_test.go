package services

import (
	"context"
	"io"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

// baseMockRepo implements Repository with nil sub-repositories. Test files
// embed it and override only what they exercise.
type baseMockRepo struct{}

func (m *baseMockRepo) User() repositories.UserRepository                 { return nil }
func (m *baseMockRepo) Post() repositories.PostRepository                 { return nil }
func (m *baseMockRepo) Event() repositories.EventRepository               { return nil }
func (m *baseMockRepo) Gallery() repositories.GalleryRepository           { return nil }
func (m *baseMockRepo) Notification() repositories.NotificationRepository { return nil }
func (m *baseMockRepo) Dashboard() repositories.DashboardRepository       { return nil }
func (m *baseMockRepo) File() repositories.FileRepository                 { return nil }
func (m *baseMockRepo) Chat() repositories.ChatRepository                 { return nil }
func (m *baseMockRepo) Ping(ctx context.Context) error                    { return nil }
func (m *baseMockRepo) Close() error                                      { return nil }

// mockUserRepo serves a fixed id list for broadcast tests.
type mockUserRepo struct {
	ids   []string
	users map[string]*models.User
}

func (m *mockUserRepo) EnsureProfile(ctx context.Context, user *models.User) (*models.User, error) {
	if existing, ok := m.users[user.ID]; ok {
		return existing, nil
	}
	if m.users == nil {
		m.users = make(map[string]*models.User)
	}
	m.users[user.ID] = user
	m.ids = append(m.ids, user.ID)
	return user, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	return m.ids, nil
}

// mockNotificationRepo stores records in memory.
type mockNotificationRepo struct {
	records    []*models.Notification
	markedRead []string
	prepare    func(n *models.Notification)
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if m.prepare != nil {
		m.prepare(n)
	}
	m.records = append(m.records, n)
	return nil
}

func (m *mockNotificationRepo) CreateMany(ctx context.Context, ns []*models.Notification) error {
	for _, n := range ns {
		if m.prepare != nil {
			m.prepare(n)
		}
	}
	m.records = append(m.records, ns...)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range m.records {
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, n := range m.records {
		if n.ID.Hex() == id {
			n.Read = true
			m.markedRead = append(m.markedRead, id)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// mockFileRepo records Store/Delete calls.
type mockFileRepo struct {
	stored  []storedFile
	deleted []string
}

type storedFile struct {
	Filename     string
	ContentType  string
	OriginalName string
	Folder       string
}

func (m *mockFileRepo) Store(ctx context.Context, filename, contentType, originalName, folder string, content io.Reader) (string, error) {
	m.stored = append(m.stored, storedFile{
		Filename:     filename,
		ContentType:  contentType,
		OriginalName: originalName,
		Folder:       folder,
	})
	return "file-id-1", nil
}

func (m *mockFileRepo) Open(ctx context.Context, id string) (*repositories.FileInfo, io.ReadCloser, error) {
	return nil, nil, repositories.ErrNotFound
}

func (m *mockFileRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockDashboardRepo returns fixed counts.
type mockDashboardRepo struct {
	users, posts, events, gallery, notifications int64
}

func (m *mockDashboardRepo) CountUsers(ctx context.Context) (int64, error)  { return m.users, nil }
func (m *mockDashboardRepo) CountPosts(ctx context.Context) (int64, error)  { return m.posts, nil }
func (m *mockDashboardRepo) CountEvents(ctx context.Context) (int64, error) { return m.events, nil }
func (m *mockDashboardRepo) CountGalleryImages(ctx context.Context) (int64, error) {
	return m.gallery, nil
}
func (m *mockDashboardRepo) CountNotifications(ctx context.Context) (int64, error) {
	return m.notifications, nil
}
