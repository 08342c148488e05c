package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhouse/internal/model"
	"clubhouse/internal/repository"
	"clubhouse/internal/utils"
	"clubhouse/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidCredentials is what callers show the user for either login failure.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrIncorrectUsername  = fmt.Errorf("incorrect username: %w", ErrInvalidCredentials)
	ErrIncorrectPassword  = fmt.Errorf("incorrect password: %w", ErrInvalidCredentials)
)

const usernameTakenMsg = "Username is already taken"

// AuthService provides registration, login and server-side sessions
type AuthService interface {
	RegisterUser(ctx context.Context, in model.SignUpInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	StartSession(ctx context.Context, user *model.User) (string, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	EndSession(ctx context.Context, token string)
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
	signer   *utils.SessionSigner
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, sessions repository.SessionRepository, signer *utils.SessionSigner, log logrus.FieldLogger) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		signer:   signer,
		log:      log,
		now:      time.Now,
	}
}

// RegisterUser validates the submission, hashes the password and stores a new
// Basic user. Shape failures and a taken username come back as *validation.Errors.
func (s *authService) RegisterUser(ctx context.Context, in model.SignUpInput) (*model.User, error) {
	in, err := validation.SignUp(in)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, validation.Single("username", usernameTakenMsg)
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Username:         in.Username,
		PasswordHash:     hashedPassword,
		MembershipStatus: model.MembershipBasic,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent sign-up for the same name.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, validation.Single("username", usernameTakenMsg)
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Authenticate checks a username/password pair against the stored hash
func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrIncorrectUsername
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrIncorrectPassword
	}

	return user, nil
}

// StartSession stores a new session for user and returns the signed token
// that identifies it.
func (s *authService) StartSession(ctx context.Context, user *model.User) (string, error) {
	now := s.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.signer.TTL()),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	token, err := s.signer.Sign(session.ID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// ResolveSession maps a token back to a freshly loaded user. Anything that
// does not lead to a live session and an existing user resolves to (nil, nil);
// only store failures are errors.
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	sessionID, err := s.signer.Verify(token)
	if err != nil {
		s.log.WithError(err).Debug("rejected session token")
		return nil, nil
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

// EndSession deletes the session behind token. Failures are logged and
// swallowed so logout always completes.
func (s *authService) EndSession(ctx context.Context, token string) {
	if token == "" {
		return
	}
	sessionID, err := s.signer.Verify(token)
	if err != nil {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("failed to delete session on logout")
	}
}

// SweepExpiredSessions removes sessions whose lifetime has passed
func (s *authService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return n, nil
}
