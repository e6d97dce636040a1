package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/deep-thoughts-api/internal/auth"
	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"github.com/yukikurage/deep-thoughts-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db       *gorm.DB
	tokens   *auth.Manager
	auth     *AuthService
	users    *UserService
	thoughts *ThoughtService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Thought{},
		&models.Reaction{},
		&models.Friendship{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewManager("test-secret")
	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)

	return serviceTestEnv{
		db:       db,
		tokens:   tokens,
		auth:     NewAuthService(userRepo, tokens),
		users:    NewUserService(userRepo),
		thoughts: NewThoughtService(thoughtRepo),
	}
}

func TestAuthService_Signup(t *testing.T) {
	env := setupServiceTestEnv(t)

	user, token, err := env.auth.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotZero(t, user.ID)

	// The password is stored hashed, never in the clear.
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	// The returned token carries exactly the user's claim triple.
	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.Username, claims.Username)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, _, err := env.auth.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = env.auth.Signup(SignupInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrUsernameOrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, _, err := env.auth.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	user, token, err := env.auth.Login("alice@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_IdenticalErrorForBothFailures(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, _, err := env.auth.Signup(SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, wrongPassErr := env.auth.Login("alice@example.com", "wrongpass")
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)

	_, _, unknownEmailErr := env.auth.Login("nonexistent@example.com", "anything")
	require.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)

	// The two failure modes must be indistinguishable to the caller.
	require.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
}

func TestUserService_AddFriend_Idempotent(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice, _, err := env.auth.Signup(SignupInput{Username: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	bob, _, err := env.auth.Signup(SignupInput{Username: "bob", Email: "bob@example.com", Password: "supersecret"})
	require.NoError(t, err)

	updated, err := env.users.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.FriendCount())

	updated, err = env.users.AddFriend(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 1, updated.FriendCount())
}

func TestThoughtService_AddReaction_MissingThought(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.thoughts.AddReaction(12345, "alice", "hello?")
	require.ErrorIs(t, err, ErrThoughtNotFound)
}

func TestThoughtService_Thought_AbsentIsNil(t *testing.T) {
	env := setupServiceTestEnv(t)

	thought, err := env.thoughts.Thought(12345)
	require.NoError(t, err)
	require.Nil(t, thought)
}
