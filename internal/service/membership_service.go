package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"clubhouse/internal/config"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"

	"github.com/sirupsen/logrus"
)

// MembershipService upgrades users with the shared tier passcodes
type MembershipService interface {
	UpgradeMembership(ctx context.Context, userID int64, passcode string) (*model.User, error)
}

type tierPasscode struct {
	tier   string
	secret string
}

type membershipService struct {
	userRepo repository.UserRepository
	tiers    []tierPasscode
	log      logrus.FieldLogger
}

// NewMembershipService creates a new MembershipService. Passcodes are tried in
// the order Member, Admin, Basic.
func NewMembershipService(userRepo repository.UserRepository, passcodes config.Passcodes, log logrus.FieldLogger) MembershipService {
	return &membershipService{
		userRepo: userRepo,
		tiers: []tierPasscode{
			{model.MembershipMember, passcodes.Member},
			{model.MembershipAdmin, passcodes.Admin},
			{model.MembershipBasic, passcodes.Basic},
		},
		log: log,
	}
}

// tierFor returns the first tier whose secret equals passcode, or "".
// Unset secrets never match.
func (s *membershipService) tierFor(passcode string) string {
	for _, t := range s.tiers {
		if t.secret == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(passcode), []byte(t.secret)) == 1 {
			return t.tier
		}
	}
	return ""
}

// UpgradeMembership sets the user's tier to the one unlocked by passcode. An
// unrecognized passcode leaves the user unchanged. The read and the update are
// separate statements; concurrent upgrades resolve last-write-wins.
func (s *membershipService) UpgradeMembership(ctx context.Context, userID int64, passcode string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for membership upgrade: %w", err)
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}

	tier := s.tierFor(passcode)
	if tier == "" || tier == user.MembershipStatus {
		return user, nil
	}

	if err := s.userRepo.UpdateMembershipStatus(ctx, user.ID, tier); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"from":    user.MembershipStatus,
		"to":      tier,
	}).Info("membership changed")

	user.MembershipStatus = tier
	return user, nil
}
