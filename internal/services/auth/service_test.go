package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/jkwan-hk/eatery/internal/dependencies/mocks"
	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/storage/memory"
	"github.com/jkwan-hk/eatery/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegister() {
	err := s.service.Register(s.ctx, "alice", "hunter2", "hunter2")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal(s.clock.CurrentTime, user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterStoresHashNotPassword() {
	err := s.service.Register(s.ctx, "alice", "hunter2", "hunter2")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("hunter2", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
}

func (s *ServiceSuite) TestRegisterPasswordMismatch() {
	err := s.service.Register(s.ctx, "alice", "hunter2", "hunter3")
	s.ErrorIs(err, ErrPasswordMismatch)

	_, err = s.storage.GetUser(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "hunter2", "hunter2"))

	err := s.service.Register(s.ctx, "alice", "other", "other")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *ServiceSuite) TestRegisterUsernameVerbatim() {
	// No trimming or case folding: these are three distinct accounts
	s.Require().NoError(s.service.Register(s.ctx, "alice", "pw", "pw"))
	s.Require().NoError(s.service.Register(s.ctx, "Alice", "pw", "pw"))
	s.Require().NoError(s.service.Register(s.ctx, "alice ", "pw", "pw"))
}

func (s *ServiceSuite) TestSignIn() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "hunter2", "hunter2"))

	identity, err := s.service.SignIn(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal("alice", identity)
}

func (s *ServiceSuite) TestSignInWrongPassword() {
	s.Require().NoError(s.service.Register(s.ctx, "alice", "hunter2", "hunter2"))

	_, err := s.service.SignIn(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSignInUnknownUser() {
	_, err := s.service.SignIn(s.ctx, "nobody", "hunter2")
	s.ErrorIs(err, ErrInvalidCredentials)
}
