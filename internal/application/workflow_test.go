package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/memory"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

// spyRepository counts calls and can be told to fail.
type spyRepository struct {
	inner   *memory.UserRepository
	mu      sync.Mutex
	saves   int
	finds   int
	saveErr error
	findErr error
}

func newSpy() *spyRepository { return &spyRepository{inner: memory.NewUserRepository()} }

func (s *spyRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	s.finds++
	s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.inner.FindAll(ctx)
}

func (s *spyRepository) Save(ctx context.Context, u *entity.User) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.inner.Save(ctx, u)
}

type fakeIndexer struct {
	indexed []string
	err     error
}

func (f *fakeIndexer) IndexUser(_ context.Context, u *entity.User) error {
	f.indexed = append(f.indexed, u.ID().String())
	return f.err
}

type fakePublisher struct {
	types  []string
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, eventType string, body any) error {
	f.types = append(f.types, eventType)
	f.bodies = append(f.bodies, body)
	return f.err
}

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func TestCreateThenListReturnsNewUserFirst(t *testing.T) {
	repo := newSpy()
	create := NewUserCreateWorkflow(repo, nil, nil, quietLogger())
	list := NewUsersGetWorkflow(repo, quietLogger())
	ctx := context.Background()

	_, err := create.Execute(ctx, map[string]any{"name": "Zed", "age": float64(50)})
	require.NoError(t, err)

	res, err := create.Execute(ctx, map[string]any{"name": "Alice", "age": float64(30)})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "Alice", res.Name)
	assert.Equal(t, 30, res.Age)

	users, err := list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, users.Users, 2)
	assert.Equal(t, res, users.Users[0])
	assert.Equal(t, "Zed", users.Users[1].Name)
}

func TestCreateTrimsName(t *testing.T) {
	create := NewUserCreateWorkflow(newSpy(), nil, nil, quietLogger())

	res, err := create.Execute(context.Background(), map[string]any{"name": "  Alice  ", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.Name)
}

func TestCreateInvalidNameNeverSaves(t *testing.T) {
	repo := newSpy()
	create := NewUserCreateWorkflow(repo, nil, nil, quietLogger())

	_, err := create.Execute(context.Background(), map[string]any{"name": "", "age": float64(30)})

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "User name cannot be empty")
	assert.Zero(t, repo.saves)

	users, err := NewUsersGetWorkflow(repo, quietLogger()).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users.Users)
}

func TestCreateNameIsCheckedBeforeAge(t *testing.T) {
	create := NewUserCreateWorkflow(newSpy(), nil, nil, quietLogger())

	_, err := create.Execute(context.Background(), map[string]any{"name": strings.Repeat("x", 101), "age": "old"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid user name")
	assert.NotContains(t, err.Error(), "age")
}

func TestCreateInvalidAge(t *testing.T) {
	repo := newSpy()
	create := NewUserCreateWorkflow(repo, nil, nil, quietLogger())

	_, err := create.Execute(context.Background(), map[string]any{"name": "Bob", "age": float64(200)})

	require.Error(t, err)
	assert.EqualError(t, err, "Invalid age: Age must be 150 or less")
	assert.Zero(t, repo.saves)
}

func TestCreateMissingParams(t *testing.T) {
	create := NewUserCreateWorkflow(newSpy(), nil, nil, quietLogger())

	_, err := create.Execute(context.Background(), nil)
	assert.EqualError(t, err, "Invalid user name: Required")

	_, err = create.Execute(context.Background(), map[string]any{"name": "Alice"})
	assert.EqualError(t, err, "Invalid age: Required")

	_, err = create.Execute(context.Background(), map[string]any{"name": "Alice", "age": nil})
	assert.EqualError(t, err, "Invalid age: Expected number, received null")
}

func TestCreatePropagatesSaveFailure(t *testing.T) {
	repo := newSpy()
	repo.saveErr = apperror.Internal("Failed to save user", errors.New("disk full"))
	idx := &fakeIndexer{}
	pub := &fakePublisher{}
	create := NewUserCreateWorkflow(repo, idx, pub, quietLogger())

	_, err := create.Execute(context.Background(), map[string]any{"name": "Alice", "age": 30})

	require.Error(t, err)
	assert.Same(t, repo.saveErr, err)
	assert.Empty(t, idx.indexed)
	assert.Empty(t, pub.types)
}

func TestCreateRunsSideEffectsAfterSave(t *testing.T) {
	idx := &fakeIndexer{}
	pub := &fakePublisher{}
	create := NewUserCreateWorkflow(newSpy(), idx, pub, quietLogger())

	res, err := create.Execute(context.Background(), map[string]any{"name": "Alice", "age": 30})
	require.NoError(t, err)

	assert.Equal(t, []string{res.ID}, idx.indexed)
	require.Equal(t, []string{EventUserCreated}, pub.types)
	body := pub.bodies[0].(map[string]any)
	assert.Equal(t, res.ID, body["id"])
	assert.Equal(t, "Alice", body["name"])
}

func TestCreateSideEffectFailuresAreLoggedOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	idx := &fakeIndexer{err: errors.New("es down")}
	pub := &fakePublisher{err: errors.New("broker down")}
	create := NewUserCreateWorkflow(newSpy(), idx, pub, logger)

	res, err := create.Execute(context.Background(), map[string]any{"name": "Alice", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.Name)

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestListEmptyIsEmptySlice(t *testing.T) {
	res, err := NewUsersGetWorkflow(newSpy(), quietLogger()).Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Users)
	assert.Empty(t, res.Users)
}

func TestListIsIdempotent(t *testing.T) {
	repo := newSpy()
	create := NewUserCreateWorkflow(repo, nil, nil, quietLogger())
	list := NewUsersGetWorkflow(repo, quietLogger())
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := create.Execute(ctx, map[string]any{"name": name, "age": 1})
		require.NoError(t, err)
	}

	first, err := list.Execute(ctx)
	require.NoError(t, err)
	second, err := list.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListPropagatesFailureUnchanged(t *testing.T) {
	repo := newSpy()
	repo.findErr = apperror.Internal("Failed to find all users", errors.New("io"))

	_, err := NewUsersGetWorkflow(repo, quietLogger()).Execute(context.Background())
	assert.Same(t, repo.findErr, err)
}
