package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vietlong/booking-api/internal/domain/user"
	"github.com/vietlong/booking-api/internal/pkg/jwt"
	"github.com/vietlong/booking-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*user.User{},
		byID:    map[uuid.UUID]*user.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return len(f.byID), nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return nil
}
func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, key string) error { return nil }
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	if u := f.byID[id]; u != nil {
		u.Role = role
	}
	return nil
}
func (f *fakeUserRepo) UpdateBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	if u := f.byID[id]; u != nil {
		u.IsBanned = banned
	}
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	return nil
}

type fakeTokenStore struct {
	mu      sync.Mutex
	revoked map[string]bool
	tracked map[uuid.UUID][]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: map[string]bool{}, tracked: map[uuid.UUID][]string{}}
}

func (f *fakeTokenStore) Track(ctx context.Context, userID uuid.UUID, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked[userID] = append(f.tracked[userID], jti)
	return nil
}
func (f *fakeTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = true
	return nil
}
func (f *fakeTokenStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[jti], nil
}
func (f *fakeTokenStore) ActiveTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []string
	for _, jti := range f.tracked[userID] {
		if !f.revoked[jti] {
			active = append(active, jti)
		}
	}
	return active, nil
}
func (f *fakeTokenStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) (int, error) {
	active, _ := f.ActiveTokens(ctx, userID)
	for _, jti := range active {
		f.Revoke(ctx, jti, ttl)
	}
	return len(active), nil
}
func (f *fakeTokenStore) Stats(ctx context.Context) (*BlacklistStats, error) {
	return &BlacklistStats{BlacklistedTokens: len(f.revoked), TrackedUsers: len(f.tracked)}, nil
}
func (f *fakeTokenStore) Cleanup(ctx context.Context) (int, error) { return 0, nil }

func newTestService() (*Service, *fakeUserRepo, *fakeTokenStore) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, time.Hour)
	return NewService(repo, jwtSvc, tokens), repo, tokens
}

func TestRegisterCreatesUserWithUserRole(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Nguyen@Example.com",
		Password: "secret-password",
		FullName: "Nguyen Van A",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if resp.Token == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User.Role != user.RoleUser {
		t.Fatalf("expected USER role, got %s", resp.User.Role)
	}

	// Email must be normalized before storage.
	if repo.byEmail["nguyen@example.com"] == nil {
		t.Fatal("expected user stored under normalized email")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := &RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(ctx, &RegisterRequest{Email: "A@B.com", Password: "x-password", FullName: "B"}); err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, _ := password.Hash("correct-password")
	u := &user.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: hash, Role: user.RoleUser}
	repo.Create(ctx, u)

	if _, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "wrong"}, "127.0.0.1"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	resp, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "correct-password"}, "127.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.User.ID != u.ID {
		t.Fatal("unexpected user in login response")
	}
}

func TestLoginRejectsBannedUser(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, _ := password.Hash("correct-password")
	repo.Create(ctx, &user.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: hash, IsBanned: true})

	if _, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "correct-password"}, ""); err != ErrUserBanned {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}

func TestLogoutRevokesTokenAndIntrospectSeesIt(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	intro := svc.Introspect(ctx, resp.Token)
	if !intro.Valid {
		t.Fatal("expected freshly issued token to be valid")
	}

	active, _ := tokens.ActiveTokens(ctx, uuid.MustParse(intro.UserID))
	if len(active) != 1 {
		t.Fatalf("expected 1 tracked token, got %d", len(active))
	}

	if err := svc.Logout(ctx, active[0]); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if svc.Introspect(ctx, resp.Token).Valid {
		t.Fatal("expected revoked token to be invalid")
	}
}

func TestForceLogoutRevokesAllTokens(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	userID := resp.User.ID

	// A second session.
	if _, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "secret-password"}, ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	revoked, err := svc.ForceLogout(ctx, userID)
	if err != nil {
		t.Fatalf("force logout failed: %v", err)
	}
	if revoked != 2 {
		t.Fatalf("expected 2 revoked tokens, got %d", revoked)
	}

	if svc.Introspect(ctx, resp.Token).Valid {
		t.Fatal("expected token to be revoked after force logout")
	}
}
