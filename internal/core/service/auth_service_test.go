package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
	"github.com/agencydesk/agency-platform/internal/core/token"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) delete(id string) {
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (s *stubRevoker) Revoke(_ context.Context, tokenStr string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenStr] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, tokenStr string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[tokenStr], nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newAuthSvc(users ports.UserRepository, revoker ports.TokenRevoker) *AuthService {
	return NewAuthService(users, token.NewManager("test-secret", time.Hour), revoker, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	tok, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "a@x.com", Password: "Secret123!", Role: domain.RoleDeveloper,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected token, got empty")
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.PasswordHash == "Secret123!" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "bob", Email: "b@x.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleDeveloper {
		t.Fatalf("expected default role %q, got %q", domain.RoleDeveloper, user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), newStubRevoker())

	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@x.com", Password: "pw"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("missing name: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "n", Email: "x@x.com", Password: "pw", Role: "superuser"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad role: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	in := ports.RegisterInput{Name: "carol", Email: "c@x.com", Password: "pw123456"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "dave", Email: "d@x.com", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "d@x.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatal("expected token")
	}
	if user.Name != "dave" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "eve", Email: "e@x.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "e@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIsGeneric(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), newStubRevoker())

	// Unknown email must be indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Authenticate / Logout
// ---------------------------------------------------------------------------

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	tok, user, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "fred", Email: "f@x.com", Password: "pw123456"})

	got, err := svc.Authenticate(context.Background(), tok)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %q, got %q", user.ID, got.ID)
	}
}

func TestAuthService_Authenticate_GarbageToken(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), newStubRevoker())

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedSubject(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, newStubRevoker())

	tok, user, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "gone", Email: "g@x.com", Password: "pw123456"})
	repo.delete(user.ID)

	// Valid, unexpired token whose subject no longer resolves.
	if _, err := svc.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc := newAuthSvc(repo, revoker)

	tok, _, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "hank", Email: "h@x.com", Password: "pw123456"})

	if err := svc.Logout(context.Background(), tok); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !revoker.revoked[tok] {
		t.Fatal("expected token on the denylist")
	}
	if _, err := svc.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("revoked token must fail authentication, got %v", err)
	}
}

func TestAuthService_Authenticate_RevokerDownFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc := newAuthSvc(repo, revoker)

	tok, _, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "ivy", Email: "i@x.com", Password: "pw123456"})
	revoker.err = errors.New("redis timeout")

	if _, err := svc.Authenticate(context.Background(), tok); err != nil {
		t.Fatalf("expected fail-open when revocation store is down, got %v", err)
	}
}
