package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
)

// InviteTTL is how long an invite token stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

// Invite is a pending staff invitation. The token is single-use and expires.
type Invite struct {
	ID         string             `json:"id"`
	Email      string             `json:"email"`
	Role       constants.UserRole `json:"role"`
	Token      string             `json:"token"`
	InvitedBy  string             `json:"invited_by"`
	CreatedAt  time.Time          `json:"created_at"`
	ExpiresAt  time.Time          `json:"expires_at"`
	AcceptedAt *time.Time         `json:"accepted_at,omitempty"`
}

// NewInvite creates an invite with a fresh random token.
func NewInvite(email string, role constants.UserRole, invitedBy string) *Invite {
	now := time.Now().UTC()
	return &Invite{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		Token:     newInviteToken(),
		InvitedBy: invitedBy,
		CreatedAt: now,
		ExpiresAt: now.Add(InviteTTL),
	}
}

// IsExpired reports whether the invite token has lapsed.
func (i *Invite) IsExpired() bool {
	return time.Now().UTC().After(i.ExpiresAt)
}

// IsAccepted reports whether the invite has already been redeemed.
func (i *Invite) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// Accept redeems the invite. Expired or already-redeemed invites are rejected.
func (i *Invite) Accept() error {
	if i.IsAccepted() {
		return errors.ErrConflict("invite has already been accepted")
	}
	if i.IsExpired() {
		return errors.ErrConflict("invite has expired")
	}
	now := time.Now().UTC()
	i.AcceptedAt = &now
	return nil
}

func newInviteToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
