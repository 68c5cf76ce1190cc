package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/dmitrijs2005/odyssey/internal/server/geocoding"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/boundaries"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/configs"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/locations"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.users[u.UserName] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// --- configs ---

type fakeConfigsRepo struct {
	values map[string]string

	getErr error
	setErr error
	allOut []models.Config
	allErr error
}

func (f *fakeConfigsRepo) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (f *fakeConfigsRepo) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeConfigsRepo) All(ctx context.Context) ([]models.Config, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

// --- locations ---

type coords struct {
	id       int64
	lat, lon float64
}

type fakeLocationsRepo struct {
	insertID  int64
	insertErr error
	inserted  []models.LocationFields

	updateN   int64
	updateErr error
	updated   []models.LocationFields

	deleteN   int64
	deleteErr error

	setCalls []coords
	setErr   error

	getOut *models.Location
	getErr error

	listOut  []*models.LocationWithBoundary
	pagesOut models.Pages
	pageSize int
}

func (f *fakeLocationsRepo) List(ctx context.Context) ([]*models.LocationWithBoundary, error) {
	return f.listOut, nil
}

func (f *fakeLocationsRepo) ListMinimal(ctx context.Context) ([]models.LocationSummary, error) {
	return nil, nil
}

func (f *fakeLocationsRepo) ListMinimalPaged(ctx context.Context, pageSize int) (models.Pages, error) {
	f.pageSize = pageSize
	return f.pagesOut, nil
}

func (f *fakeLocationsRepo) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeLocationsRepo) Insert(ctx context.Context, fields models.LocationFields) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, fields)
	return f.insertID, nil
}

func (f *fakeLocationsRepo) Update(ctx context.Context, id int64, fields models.LocationFields) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.updated = append(f.updated, fields)
	return f.updateN, nil
}

func (f *fakeLocationsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return f.deleteN, f.deleteErr
}

func (f *fakeLocationsRepo) SetCoordinates(ctx context.Context, id int64, lat, lon float64) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setCalls = append(f.setCalls, coords{id: id, lat: lat, lon: lon})
	return nil
}

// --- boundaries ---

type fakeBoundariesRepo struct {
	inserted map[int64]map[string]any
	err      error
}

func (f *fakeBoundariesRepo) Insert(ctx context.Context, id int64, b map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.inserted == nil {
		f.inserted = map[int64]map[string]any{}
	}
	f.inserted[id] = b
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeConfigsRepo
	l *fakeLocationsRepo
	b *fakeBoundariesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Configs(db dbx.DBTX) configs.Repository       { return m.c }
func (m *fakeRepoManager) Locations(db dbx.DBTX) locations.Repository   { return m.l }
func (m *fakeRepoManager) Boundaries(db dbx.DBTX) boundaries.Repository { return m.b }

// --- enricher ---

type fakeEnricher struct {
	calls int
	name  string
	id    int64
	out   *geocoding.Result
	err   error
}

func (f *fakeEnricher) Enrich(ctx context.Context, id int64, name string) (*geocoding.Result, error) {
	f.calls++
	f.id, f.name = id, name
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}
