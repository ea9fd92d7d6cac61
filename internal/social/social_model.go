package social

import (
	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/user"
	"gorm.io/gorm"
)

// FriendRequestStatus tracks the lifecycle of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest links two users. An accepted request IS the friendship;
// there is no separate friends table.
type FriendRequest struct {
	gorm.Model
	SenderID   uint                `gorm:"uniqueIndex:idx_friend_sender_receiver;not null" json:"sender_id"`
	Sender     user.User           `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID uint                `gorm:"uniqueIndex:idx_friend_sender_receiver;not null" json:"receiver_id"`
	Receiver   user.User           `gorm:"foreignKey:ReceiverID" json:"-"`
	Status     FriendRequestStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
}

// UserBlock prevents the blocked user from sending the blocker friend
// requests or match invitations.
type UserBlock struct {
	gorm.Model
	BlockerID uint      `gorm:"uniqueIndex:idx_block_blocker_blocked;not null" json:"blocker_id"`
	Blocker   user.User `gorm:"foreignKey:BlockerID" json:"-"`
	BlockedID uint      `gorm:"uniqueIndex:idx_block_blocker_blocked;not null" json:"blocked_id"`
	Blocked   user.User `gorm:"foreignKey:BlockedID" json:"-"`
}

// InvitationStatus tracks the lifecycle of a match invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// MatchInvitation invites a user to an open match. The code lets the invite
// be shared out of band and redeemed without knowing the match ID.
type MatchInvitation struct {
	gorm.Model
	MatchID   uint             `gorm:"not null;index" json:"match_id"`
	Match     match.Match      `gorm:"foreignKey:MatchID" json:"-"`
	InviterID uint             `gorm:"not null" json:"inviter_id"`
	Inviter   user.User        `gorm:"foreignKey:InviterID" json:"-"`
	InviteeID uint             `gorm:"not null;index" json:"invitee_id"`
	Invitee   user.User        `gorm:"foreignKey:InviteeID" json:"-"`
	Code      string           `gorm:"uniqueIndex;not null" json:"code"`
	Status    InvitationStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
}
