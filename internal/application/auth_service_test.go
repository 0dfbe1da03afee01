package application

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventku/auth-api/internal/domain/entity"
	"github.com/eventku/auth-api/internal/domain/repository"
	"github.com/eventku/auth-api/pkg/helpers"
)

// memRepo is an in-memory UserRepository that enforces the same uniqueness
// guarantees the store does.
type memRepo struct {
	mu           sync.Mutex
	seq          int
	users        map[string]*entity.User
	getByIDCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	u.ID = strconv.Itoa(r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = copyUser(u)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByIDCalls++
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memRepo) FindActiveByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (u.Username == identifier || u.Email == identifier) && u.IsActive {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memRepo) Activate(_ context.Context, code string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ActivationCode == code {
			u.IsActive = true
			u.UpdatedAt = time.Now()
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestService(repo repository.UserRepository) *Service {
	return NewService(
		repo,
		helpers.NewHasher("hash-secret"),
		helpers.NewJWTManager("jwt-secret", time.Hour),
		nil, nil, nil, nil, "", "http://localhost/activation", false,
	)
}

func register(t *testing.T, svc *Service, username, email, password string) *entity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Fullname:        "A B",
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterCreatesInactiveUser(t *testing.T) {
	svc := newTestService(newMemRepo())

	u := register(t, svc, "ab", "ab@x.com", "Secret1")

	assert.False(t, u.IsActive)
	assert.NotEmpty(t, u.ActivationCode)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEqual(t, "Secret1", u.Password)
}

func TestRegisterValidationAbortsBeforePersistence(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Fullname:        "A B",
		Username:        "ab",
		Email:           "ab@x.com",
		Password:        "Secret1",
		ConfirmPassword: "Secret2",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "confirmPassword", verr.Field)
	assert.Empty(t, repo.users)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	register(t, svc, "ab", "ab@x.com", "Secret1")

	_, err := svc.Register(context.Background(), RegisterInput{
		Fullname:        "Other",
		Username:        "ab",
		Email:           "other@x.com",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Len(t, repo.users, 1)
}

func TestLoginInactiveUserIsNotFound(t *testing.T) {
	svc := newTestService(newMemRepo())
	register(t, svc, "ab", "ab@x.com", "Secret1")

	_, _, err := svc.Login(context.Background(), "ab", "Secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, _, err := svc.Login(context.Background(), "ghost", "Secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newMemRepo())
	u := register(t, svc, "ab", "ab@x.com", "Secret1")
	_, err := svc.Activate(context.Background(), u.ActivationCode)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ab", "Secret2")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginIssuesTokenForActiveUser(t *testing.T) {
	svc := newTestService(newMemRepo())
	u := register(t, svc, "ab", "ab@x.com", "Secret1")
	_, err := svc.Activate(context.Background(), u.ActivationCode)
	require.NoError(t, err)

	for _, identifier := range []string{"ab", "ab@x.com"} {
		token, exp, err := svc.Login(context.Background(), identifier, "Secret1")
		require.NoError(t, err, identifier)
		assert.True(t, exp.After(time.Now()))

		claims, err := svc.JWT.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, u.Role, claims.Role)
	}
}

func TestActivateFlipsExactlyOneRecord(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	first := register(t, svc, "ab", "ab@x.com", "Secret1")
	second := register(t, svc, "cd", "cd@x.com", "Secret1")

	activated, err := svc.Activate(context.Background(), first.ActivationCode)
	require.NoError(t, err)
	require.NotNil(t, activated)
	assert.Equal(t, first.ID, activated.ID)
	assert.True(t, activated.IsActive)

	other, err := repo.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.False(t, other.IsActive)
}

func TestActivateUnknownCodeIsIdempotentNoOp(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	u := register(t, svc, "ab", "ab@x.com", "Secret1")

	for i := 0; i < 2; i++ {
		res, err := svc.Activate(context.Background(), "no-such-code")
		require.NoError(t, err)
		assert.Nil(t, res)
	}

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestGetProfileUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := newMemRepo()
	svc := newTestService(repo)
	svc.Redis = rdb

	u := register(t, svc, "ab", "ab@x.com", "Secret1")

	first, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	second, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, 1, repo.getByIDCalls)
}

func TestActivateInvalidatesProfileCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := newMemRepo()
	svc := newTestService(repo)
	svc.Redis = rdb

	u := register(t, svc, "ab", "ab@x.com", "Secret1")

	before, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, before.IsActive)

	_, err = svc.Activate(context.Background(), u.ActivationCode)
	require.NoError(t, err)

	after, err := svc.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, after.IsActive)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.GetProfile(context.Background(), "999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Full journey: register, login before activation fails, activate, login by
// email succeeds.
func TestRegisterActivateLoginScenario(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Fullname:        "A B",
		Username:        "ab",
		Email:           "ab@x.com",
		Password:        "Secret1",
		ConfirmPassword: "Secret1",
	})
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	_, _, err = svc.Login(ctx, "ab", "Secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	activated, err := svc.Activate(ctx, u.ActivationCode)
	require.NoError(t, err)
	require.NotNil(t, activated)
	assert.True(t, activated.IsActive)

	token, _, err := svc.Login(ctx, "ab@x.com", "Secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
