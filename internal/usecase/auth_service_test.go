package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtside/nba-stats-api/internal/domain/user"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID int64) (user.User, bool, error) {
	u, ok := f.users[userID]
	return u, ok, nil
}

func (f *fakeUserRepo) findBy(match func(user.User) bool) (user.User, bool, error) {
	for _, u := range f.users {
		if match(u) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	return f.findBy(func(u user.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByCPF(_ context.Context, cpf string) (user.User, bool, error) {
	return f.findBy(func(u user.User) bool { return u.CPF == cpf })
}

func (f *fakeUserRepo) GetByVerificationToken(_ context.Context, token string) (user.User, bool, error) {
	return f.findBy(func(u user.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	})
}

func (f *fakeUserRepo) GetByPasswordResetToken(_ context.Context, token string) (user.User, bool, error) {
	return f.findBy(func(u user.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token
	})
}

func (f *fakeUserRepo) MarkVerified(_ context.Context, userID int64) error {
	u := f.users[userID]
	u.IsVerified = true
	u.IsActive = true
	u.EmailVerificationToken = nil
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) SetVerificationToken(_ context.Context, userID int64, token string, sentAt time.Time) error {
	u := f.users[userID]
	u.EmailVerificationToken = &token
	u.EmailVerificationSentAt = &sentAt
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) SetPasswordResetToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	u := f.users[userID]
	u.PasswordResetToken = &token
	u.PasswordResetTokenExpiry = &expiresAt
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = passwordHash
	u.PasswordResetToken = nil
	u.PasswordResetTokenExpiry = nil
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) List(context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeTokenManager struct {
	counter int
}

func (f *fakeTokenManager) IssueAccessToken(u user.User) (string, time.Time, error) {
	return fmt.Sprintf("access-%d", u.ID), time.Now().Add(time.Hour), nil
}

func (f *fakeTokenManager) IssueVerificationToken(userID int64, _ string) (string, error) {
	f.counter++
	return fmt.Sprintf("verify-%d-%d", userID, f.counter), nil
}

func (f *fakeTokenManager) IssueResetToken(userID int64, _ string) (string, error) {
	f.counter++
	return fmt.Sprintf("reset-%d-%d", userID, f.counter), nil
}

type fakeMailer struct {
	verifications []string
	resets        []string
}

func (f *fakeMailer) SendVerificationEmail(_ context.Context, to, _, token string) error {
	f.verifications = append(f.verifications, to+":"+token)
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, to, _, token string) error {
	f.resets = append(f.resets, to+":"+token)
	return nil
}

type authFixture struct {
	svc    *AuthService
	users  *fakeUserRepo
	mailer *fakeMailer
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:  newFakeUserRepo(),
		mailer: &fakeMailer{},
		now:    time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthService(AuthServiceConfig{
		Users:           f.users,
		Tokens:          &fakeTokenManager{},
		Mailer:          f.mailer,
		Logger:          logging.NewNop(),
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        3 * time.Hour,
	})
	f.svc.now = func() time.Time { return f.now }
	f.svc.background = func(fn func()) { fn() }
	return f
}

func validSignUp() SignUpInput {
	return SignUpInput{
		FullName: "Ana Souza",
		Email:    "Ana.Souza@Example.com",
		CPF:      "123.456.789-00",
		Password: "s3cret-pass",
	}
}

func TestSignUp(t *testing.T) {
	t.Run("creates unverified account and sends email", func(t *testing.T) {
		f := newAuthFixture(t)

		created, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)

		require.Equal(t, "ana.souza@example.com", created.Email)
		require.Equal(t, user.RoleUser, created.Role)
		require.False(t, created.IsVerified)
		require.NotEqual(t, "s3cret-pass", created.PasswordHash)

		stored := f.users.users[created.ID]
		require.NotNil(t, stored.EmailVerificationToken)
		require.Len(t, f.mailer.verifications, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)

		input := validSignUp()
		input.CPF = "999.999.999-99"
		_, err = f.svc.SignUp(context.Background(), input)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate cpf", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)

		input := validSignUp()
		input.Email = "other@example.com"
		_, err = f.svc.SignUp(context.Background(), input)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("short password", func(t *testing.T) {
		f := newAuthFixture(t)
		input := validSignUp()
		input.Password = "short"
		_, err := f.svc.SignUp(context.Background(), input)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	signUpAndVerify := func(t *testing.T, f *authFixture) user.User {
		t.Helper()
		created, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)
		stored := f.users.users[created.ID]
		verified, err := f.svc.VerifyEmail(context.Background(), *stored.EmailVerificationToken)
		require.NoError(t, err)
		return verified
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t)
		account := signUpAndVerify(t, f)

		session, err := f.svc.Login(context.Background(), "ana.souza@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.Equal(t, "bearer", session.TokenType)
		require.NotEmpty(t, session.AccessToken)
		require.Equal(t, account.ID, session.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		signUpAndVerify(t, f)

		_, err := f.svc.Login(context.Background(), "ana.souza@example.com", "wrong-pass")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.svc.Login(context.Background(), "nobody@example.com", "whatever1")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unverified account", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)

		_, err = f.svc.Login(context.Background(), "ana.souza@example.com", "s3cret-pass")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("deactivated account", func(t *testing.T) {
		f := newAuthFixture(t)
		account := signUpAndVerify(t, f)

		stored := f.users.users[account.ID]
		stored.IsActive = false
		f.users.users[account.ID] = stored

		_, err := f.svc.Login(context.Background(), "ana.souza@example.com", "s3cret-pass")
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.VerifyEmail(context.Background(), "bogus")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		created, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)
		stored := f.users.users[created.ID]

		f.now = f.now.Add(25 * time.Hour)
		_, err = f.svc.VerifyEmail(context.Background(), *stored.EmailVerificationToken)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("resend after expiry", func(t *testing.T) {
		f := newAuthFixture(t)
		created, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)

		f.now = f.now.Add(25 * time.Hour)
		require.NoError(t, f.svc.ResendVerification(context.Background(), created.Email))
		require.Len(t, f.mailer.verifications, 2)

		stored := f.users.users[created.ID]
		_, err = f.svc.VerifyEmail(context.Background(), *stored.EmailVerificationToken)
		require.NoError(t, err)
	})
}

func TestPasswordReset(t *testing.T) {
	setup := func(t *testing.T) (*authFixture, user.User) {
		t.Helper()
		f := newAuthFixture(t)
		created, err := f.svc.SignUp(context.Background(), validSignUp())
		require.NoError(t, err)
		return f, created
	}

	t.Run("full flow", func(t *testing.T) {
		f, created := setup(t)

		require.NoError(t, f.svc.RequestPasswordReset(context.Background(), created.Email))
		require.Len(t, f.mailer.resets, 1)

		stored := f.users.users[created.ID]
		require.NotNil(t, stored.PasswordResetToken)

		err := f.svc.ConfirmPasswordReset(context.Background(), *stored.PasswordResetToken, "new-password-1")
		require.NoError(t, err)

		updated := f.users.users[created.ID]
		require.Nil(t, updated.PasswordResetToken, "reset token is single use")
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-password-1")))
	})

	t.Run("unknown email is not an error", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
		require.Empty(t, f.mailer.resets)
	})

	t.Run("expired token", func(t *testing.T) {
		f, created := setup(t)
		require.NoError(t, f.svc.RequestPasswordReset(context.Background(), created.Email))

		f.now = f.now.Add(4 * time.Hour)
		stored := f.users.users[created.ID]
		err := f.svc.ConfirmPasswordReset(context.Background(), *stored.PasswordResetToken, "new-password-1")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		f, _ := setup(t)
		err := f.svc.ConfirmPasswordReset(context.Background(), "bogus", "new-password-1")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestUserService(t *testing.T) {
	newUsers := func(t *testing.T) (*UserService, *fakeUserRepo) {
		t.Helper()
		repo := newFakeUserRepo()
		return NewUserService(repo), repo
	}

	t.Run("profile", func(t *testing.T) {
		svc, repo := newUsers(t)
		created, err := repo.Create(context.Background(), user.User{FullName: "Ana", Email: "a@b.c", CPF: "1", Role: user.RoleUser})
		require.NoError(t, err)

		got, err := svc.GetProfile(context.Background(), created.ID)
		require.NoError(t, err)
		require.Equal(t, created.Email, got.Email)

		_, err = svc.GetProfile(context.Background(), 999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list requires admin", func(t *testing.T) {
		svc, repo := newUsers(t)
		admin, err := repo.Create(context.Background(), user.User{FullName: "Root", Email: "r@b.c", CPF: "2", Role: user.RoleAdmin})
		require.NoError(t, err)
		member, err := repo.Create(context.Background(), user.User{FullName: "Ana", Email: "a@b.c", CPF: "3", Role: user.RoleUser})
		require.NoError(t, err)

		_, err = svc.ListUsers(context.Background(), member)
		require.ErrorIs(t, err, ErrForbidden)

		out, err := svc.ListUsers(context.Background(), admin)
		require.NoError(t, err)
		require.Len(t, out, 2)
	})
}
