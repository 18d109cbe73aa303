package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/ports"
	"github.com/openboard/board-api/internal/pkg/token"
)

type stubUserRepo struct {
	users  map[uint64]*domain.User
	nextID uint64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicatedEmail
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	copy.CreatedAt = time.Now()
	copy.UpdatedAt = copy.CreatedAt
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrEmailNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SaveRefreshToken(_ context.Context, userID uint64, refreshToken string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = refreshToken
	return nil
}

func (r *stubUserRepo) RotateRefreshToken(_ context.Context, userID uint64, presented, next string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.RefreshToken == "" || u.RefreshToken != presented {
		u.RefreshToken = ""
		return domain.ErrInvalidRefreshToken
	}
	u.RefreshToken = next
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, userID uint64) error {
	if _, ok := r.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *stubUserRepo) Search(_ context.Context, _ ports.UserSearchFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleUser {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Blocked(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}

func newUserService(t *testing.T, repo *stubUserRepo, throttle ports.SignInThrottle) *UserService {
	t.Helper()
	codec, err := token.NewCodec("secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewUserService(repo, codec, throttle, zerolog.Nop())
}

func TestUserService_SignUp_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	user, err := svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.PasswordHash == "pw" {
		t.Fatalf("password stored in plaintext")
	}
	stored := repo.users[user.ID]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestUserService_SignUp_DuplicatedEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser}); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "other", Username: "x", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrDuplicatedEmail) {
		t.Fatalf("expected ErrDuplicatedEmail, got %v", err)
	}
}

func TestUserService_SignIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	if _, err := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, pair, err := svc.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if repo.users[user.ID].RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token not persisted")
	}

	codec, _ := token.NewCodec("secret", time.Hour, 24*time.Hour)
	claims, err := codec.ParseAndVerify(pair.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if claims.Email != "a@b.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserService_SignIn_UnknownEmail(t *testing.T) {
	svc := newUserService(t, newStubUserRepo(), nil)
	if _, _, err := svc.SignIn(context.Background(), "ghost@b.com", "pw"); !errors.Is(err, domain.ErrEmailNotFound) {
		t.Fatalf("expected ErrEmailNotFound, got %v", err)
	}
}

func TestUserService_SignIn_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	_, _ = svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})
	if _, _, err := svc.SignIn(context.Background(), "a@b.com", "nope"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestUserService_SignIn_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(2)
	svc := newUserService(t, repo, throttle)

	_, _ = svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})

	for i := 0; i < 2; i++ {
		if _, _, err := svc.SignIn(context.Background(), "a@b.com", "nope"); !errors.Is(err, domain.ErrInvalidPassword) {
			t.Fatalf("attempt %d: expected ErrInvalidPassword, got %v", i, err)
		}
	}
	// limit reached: even the correct password is rejected until the window expires
	if _, _, err := svc.SignIn(context.Background(), "a@b.com", "pw"); !errors.Is(err, domain.ErrTooManySignInAttempts) {
		t.Fatalf("expected ErrTooManySignInAttempts, got %v", err)
	}
}

func TestUserService_Refresh_RotatesPair(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})
	_, first, err := svc.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	second, err := svc.Refresh(context.Background(), user.ID, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}
	if repo.users[user.ID].RefreshToken != second.RefreshToken {
		t.Fatalf("rotated token not persisted")
	}

	// the pair from the first rotation keeps working exactly once
	third, err := svc.Refresh(context.Background(), user.ID, second.RefreshToken)
	if err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if third.RefreshToken == second.RefreshToken {
		t.Fatalf("second rotation did not change the token")
	}
}

func TestUserService_Refresh_MismatchRevokes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})
	_, pair, err := svc.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), user.ID, "stale-token"); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
	if repo.users[user.ID].RefreshToken != "" {
		t.Fatalf("session not revoked after mismatch")
	}

	// one-shot invalidation: the previously valid token is now dead too
	if _, err := svc.Refresh(context.Background(), user.ID, pair.RefreshToken); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken after revocation, got %v", err)
	}
}

func TestUserService_Refresh_ReuseAfterRotationFails(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})
	_, first, _ := svc.SignIn(context.Background(), "a@b.com", "pw")

	if _, err := svc.Refresh(context.Background(), user.ID, first.RefreshToken); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), user.ID, first.RefreshToken); !errors.Is(err, domain.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken on replay, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo, nil)

	user, _ := svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.com", Password: "pw", Username: "u", Role: domain.RoleUser})
	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
