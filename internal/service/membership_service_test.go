package service

import (
	"context"
	"errors"
	"testing"

	"clubhouse/internal/config"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPasscodes = config.Passcodes{Member: "clubhouse", Admin: "root", Basic: "downgrade"}

func newMembershipService(t *testing.T, passcodes config.Passcodes) (MembershipService, *mockUserRepo) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	users := &mockUserRepo{}
	t.Cleanup(func() { users.AssertExpectations(t) })
	return NewMembershipService(users, passcodes, logger), users
}

func TestUpgradeMembership_Tiers(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		passcode string
		want     string
	}{
		{"member code", model.MembershipBasic, "clubhouse", model.MembershipMember},
		{"admin code", model.MembershipBasic, "root", model.MembershipAdmin},
		{"basic code downgrades", model.MembershipAdmin, "downgrade", model.MembershipBasic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newMembershipService(t, testPasscodes)
			ctx := context.Background()

			users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: tt.from}, nil).Once()
			users.On("UpdateMembershipStatus", ctx, int64(1), tt.want).Return(nil).Once()

			user, err := svc.UpgradeMembership(ctx, 1, tt.passcode)

			require.NoError(t, err)
			assert.Equal(t, tt.want, user.MembershipStatus)
			// Only the acting user is touched.
			users.AssertNumberOfCalls(t, "UpdateMembershipStatus", 1)
		})
	}
}

func TestUpgradeMembership_UnrecognizedPasscode(t *testing.T) {
	svc, users := newMembershipService(t, testPasscodes)
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: model.MembershipBasic}, nil).Once()

	user, err := svc.UpgradeMembership(ctx, 1, "Clubhouse")

	require.NoError(t, err)
	assert.Equal(t, model.MembershipBasic, user.MembershipStatus)
	users.AssertNotCalled(t, "UpdateMembershipStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpgradeMembership_FirstMatchWins(t *testing.T) {
	// Member is checked before Admin when both secrets are equal.
	svc, users := newMembershipService(t, config.Passcodes{Member: "same", Admin: "same"})
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: model.MembershipBasic}, nil).Once()
	users.On("UpdateMembershipStatus", ctx, int64(1), model.MembershipMember).Return(nil).Once()

	user, err := svc.UpgradeMembership(ctx, 1, "same")

	require.NoError(t, err)
	assert.Equal(t, model.MembershipMember, user.MembershipStatus)
}

func TestUpgradeMembership_EmptySecretsNeverMatch(t *testing.T) {
	svc, users := newMembershipService(t, config.Passcodes{})
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: model.MembershipBasic}, nil).Once()

	user, err := svc.UpgradeMembership(ctx, 1, "")

	require.NoError(t, err)
	assert.Equal(t, model.MembershipBasic, user.MembershipStatus)
}

func TestUpgradeMembership_SameTierSkipsWrite(t *testing.T) {
	svc, users := newMembershipService(t, testPasscodes)
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: model.MembershipMember}, nil).Once()

	user, err := svc.UpgradeMembership(ctx, 1, "clubhouse")

	require.NoError(t, err)
	assert.Equal(t, model.MembershipMember, user.MembershipStatus)
}

func TestUpgradeMembership_UnknownUser(t *testing.T) {
	svc, users := newMembershipService(t, testPasscodes)
	ctx := context.Background()

	users.On("FindByID", ctx, int64(9)).Return(nil, nil).Once()

	_, err := svc.UpgradeMembership(ctx, 9, "clubhouse")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpgradeMembership_UpdateError(t *testing.T) {
	svc, users := newMembershipService(t, testPasscodes)
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, MembershipStatus: model.MembershipBasic}, nil).Once()
	users.On("UpdateMembershipStatus", ctx, int64(1), model.MembershipMember).Return(errors.New("db down")).Once()

	_, err := svc.UpgradeMembership(ctx, 1, "clubhouse")

	assert.Error(t, err)
}
