package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wholesale_portal_backend/internal/auth/repository"
	"wholesale_portal_backend/internal/auth/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/logger"
)

const testSecret = "test-secret"

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string       { return testSecret }
func (testConfig) GetAccessTokenTTL() time.Duration { return time.Hour }
func (testConfig) ShouldSeedDemoAccounts() bool     { return true }

type fakeRepo struct {
	users   map[string]repository.User
	touched []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]repository.User)}
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) TouchLastSignedIn(ctx context.Context, id uuid.UUID) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeRepo) UpsertUser(ctx context.Context, params repository.UpsertUserParams) (repository.User, error) {
	key := strings.ToLower(params.Email)
	u, ok := f.users[key]
	if !ok {
		u = repository.User{ID: uuid.New(), Email: key, PasswordHash: params.PasswordHash, CreatedAt: time.Now()}
	}
	name := params.Name
	u.Name = &name
	u.Role = params.Role
	u.DealerID = params.DealerID
	f.users[key] = u
	return u, nil
}

type fakeDealers struct {
	id      uuid.UUID
	ensured int
}

func (f *fakeDealers) GetDealer(ctx context.Context, id uuid.UUID) (DealerSummary, error) {
	if id != f.id {
		return DealerSummary{}, apperr.NotFound("dealer not found")
	}
	return DealerSummary{ID: f.id, Name: "Demo Wholesale Co."}, nil
}

func (f *fakeDealers) EnsureDealer(ctx context.Context, seed DealerSeed) (uuid.UUID, error) {
	f.ensured++
	return f.id, nil
}

func seededService(t *testing.T) (*Service, *fakeRepo, *fakeDealers) {
	t.Helper()
	repo := newFakeRepo()
	dealers := &fakeDealers{id: uuid.New()}
	svc := New(repo, dealers, testConfig{}, logger.Discard())
	if err := svc.SeedDemoAccounts(context.Background()); err != nil {
		t.Fatalf("seed demo accounts: %v", err)
	}
	return svc, repo, dealers
}

func TestLoginIssuesDealerScopedToken(t *testing.T) {
	svc, repo, dealers := seededService(t)

	resp, err := svc.Login(context.Background(), transport.LoginRequest{Email: "Dealer@Demo.com", Password: "dealer123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.Dealer == nil || resp.User.Dealer.ID != dealers.id {
		t.Fatalf("expected linked dealer in response, got %+v", resp.User)
	}
	if len(repo.touched) != 1 {
		t.Fatalf("expected last sign-in stamped once, got %d", len(repo.touched))
	}

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" || claims["dealer_id"] != dealers.id.String() {
		t.Fatalf("unexpected claims: %v", claims)
	}
	roles, _ := claims["roles"].([]any)
	if len(roles) != 1 || roles[0] != "dealer" {
		t.Fatalf("expected dealer role claim, got %v", claims["roles"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := seededService(t)

	for _, req := range []transport.LoginRequest{
		{Email: "dealer@demo.com", Password: "wrong"},
		{Email: "nobody@demo.com", Password: "dealer123"},
	} {
		if _, err := svc.Login(context.Background(), req); !apperr.Is(err, apperr.KindUnauthorized) {
			t.Fatalf("expected unauthorized for %s, got %v", req.Email, err)
		}
	}
}

func TestStaffLoginRequiresAdmin(t *testing.T) {
	svc, _, _ := seededService(t)

	if _, err := svc.StaffLogin(context.Background(), transport.LoginRequest{Email: "dealer@demo.com", Password: "dealer123"}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for dealer, got %v", err)
	}
	resp, err := svc.StaffLogin(context.Background(), transport.LoginRequest{Email: "admin@demo.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.Role != "admin" || resp.User.Dealer != nil {
		t.Fatalf("unexpected admin profile: %+v", resp.User)
	}
}

func TestSeedDemoAccountsIsRepeatable(t *testing.T) {
	svc, repo, dealers := seededService(t)
	if err := svc.SeedDemoAccounts(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.users) != 2 || dealers.ensured != 2 {
		t.Fatalf("expected two accounts after reseed, got %d users", len(repo.users))
	}
}
