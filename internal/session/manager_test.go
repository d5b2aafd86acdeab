package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jkwan-hk/eatery/internal/dependencies/mocks"
)

type ManagerSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.manager = NewManager("test-secret", DefaultTTL, s.clock)
}

func (s *ManagerSuite) TestIssueAndVerify() {
	token, err := s.manager.Issue("alice")
	s.Require().NoError(err)
	s.NotEmpty(token)

	identity, err := s.manager.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", identity)
}

func (s *ManagerSuite) TestVerifyBeforeExpiry() {
	token, err := s.manager.Issue("alice")
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL - time.Minute)

	identity, err := s.manager.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", identity)
}

func (s *ManagerSuite) TestVerifyExpired() {
	token, err := s.manager.Issue("alice")
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL + time.Minute)

	_, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ManagerSuite) TestVerifyTampered() {
	token, err := s.manager.Issue("alice")
	s.Require().NoError(err)

	_, err = s.manager.Verify(token + "x")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ManagerSuite) TestVerifyWrongSecret() {
	other := NewManager("other-secret", DefaultTTL, s.clock)
	token, err := other.Issue("alice")
	s.Require().NoError(err)

	_, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ManagerSuite) TestVerifyGarbage() {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := s.manager.Verify(token)
		s.ErrorIs(err, ErrInvalidToken)
	}
}

func (s *ManagerSuite) TestCustomTTL() {
	short := NewManager("test-secret", time.Minute, s.clock)
	token, err := short.Issue("alice")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	_, err = short.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ManagerSuite) TestZeroTTLDefaults() {
	m := NewManager("test-secret", 0, s.clock)
	token, err := m.Issue("alice")
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL - time.Minute)

	identity, err := m.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", identity)
}
