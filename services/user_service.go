package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/signit/go-signit-server/metrics"
	"github.com/signit/go-signit-server/repository"
	"github.com/signit/go-signit-server/types"
)

// UserService triggers account creation and credential checks against
// the host platforms user directory. Credentials are stored and hashed
// by the directory, never here.
type UserService struct {
	userDir *repository.UserDirectory
}

func NewUserService(userDir *repository.UserDirectory) *UserService {
	if userDir == nil {
		panic("userDir cannot be nil")
	}
	return &UserService{userDir: userDir}
}

// CreateUser registers a new account. Returns types.ErrConflict when
// the username is already taken.
func (us *UserService) CreateUser(ctx context.Context, username, password string) (*types.User, error) {
	user := &types.User{
		ID:       uuid.NewString(),
		Username: username,
		Created:  time.Now().UTC().UnixMilli(),
	}
	doc := &types.UserDocument{
		Name:     username,
		Type:     "user",
		Roles:    []string{},
		Password: password,
		UserID:   user.ID,
		Created:  user.Created,
	}
	if err := us.userDir.SaveUser(ctx, doc); err != nil {
		return nil, err
	}
	metrics.UsersRegisteredMetricsCount.Inc()
	return user, nil
}

// Authenticate verifies the credentials against the directory and
// returns the matching identity. A session without a backing account
// document is rejected rather than treated as logged in.
func (us *UserService) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	if sErr := us.userDir.CreateSession(ctx, username, password); sErr != nil {
		return nil, sErr
	}
	doc, gErr := us.userDir.GetUser(ctx, username)
	if gErr != nil {
		if gErr == types.ErrNotFound {
			return nil, types.ErrInvalidCredentials
		}
		return nil, gErr
	}
	return &types.User{
		ID:       doc.UserID,
		Username: doc.Name,
		Created:  doc.Created,
	}, nil
}
