package social

import (
	"errors"

	"github.com/tunislock/tunislock-api/internal/match"
	"github.com/tunislock/tunislock-api/internal/user"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"github.com/tunislock/tunislock-api/pkg/utils"
	"gorm.io/gorm"
)

const inviteCodeLength = 12

// SocialRepository defines database operations for the social graph.
type SocialRepository interface {
	SendFriendRequest(senderID, receiverID uint) (*FriendRequest, error)
	RespondToFriendRequest(requestID, receiverID uint, accept bool) (*FriendRequest, error)
	GetPendingRequests(receiverID uint) ([]FriendRequest, error)
	GetFriends(userID uint) ([]user.PublicUser, error)
	Unfriend(userID, friendID uint) error
	AreFriends(a, b uint) (bool, error)

	BlockUser(blockerID, blockedID uint) error
	UnblockUser(blockerID, blockedID uint) error
	IsBlocked(blockerID, blockedID uint) (bool, error)

	CreateInvitation(matchID, inviterID, inviteeID uint) (*MatchInvitation, error)
	GetInvitationByCode(code string) (*MatchInvitation, error)
	RespondToInvitation(code string, inviteeID uint, accept bool) (*MatchInvitation, error)
	GetMyInvitations(inviteeID uint) ([]MatchInvitation, error)
}

type GormSocialRepository struct {
	db *gorm.DB
}

func NewGormSocialRepository(db *gorm.DB) *GormSocialRepository {
	return &GormSocialRepository{db: db}
}

// SendFriendRequest creates a pending request after checking blocks and
// existing relationships in either direction.
func (r *GormSocialRepository) SendFriendRequest(senderID, receiverID uint) (*FriendRequest, error) {
	if senderID == receiverID {
		return nil, apperrors.Validation("you cannot befriend yourself")
	}

	var req *FriendRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var receiverExists bool
		if err := tx.Model(&user.User{}).Select("count(*) > 0").Where("id = ?", receiverID).Find(&receiverExists).Error; err != nil {
			return apperrors.Internal("failed to check receiver", err)
		}
		if !receiverExists {
			return apperrors.NotFound("user not found")
		}

		var blocked int64
		if err := tx.Model(&UserBlock{}).
			Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
				receiverID, senderID, senderID, receiverID).
			Count(&blocked).Error; err != nil {
			return apperrors.Internal("failed to check blocks", err)
		}
		if blocked > 0 {
			return apperrors.Authorization("you cannot send a friend request to this user")
		}

		var existing FriendRequest
		err := tx.Where(
			"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status != ?",
			senderID, receiverID, receiverID, senderID, FriendRequestRejected).
			First(&existing).Error
		if err == nil {
			if existing.Status == FriendRequestAccepted {
				return apperrors.Conflict("you are already friends")
			}
			return apperrors.Conflict("a friend request is already pending")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal("failed to check existing requests", err)
		}

		req = &FriendRequest{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     FriendRequestPending,
		}
		if err := tx.Create(req).Error; err != nil {
			return apperrors.Internal("failed to create friend request", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RespondToFriendRequest accepts or rejects a pending request. Only the
// receiver may respond.
func (r *GormSocialRepository) RespondToFriendRequest(requestID, receiverID uint, accept bool) (*FriendRequest, error) {
	var req FriendRequest
	if err := r.db.First(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("friend request not found")
		}
		return nil, apperrors.Internal("failed to fetch friend request", err)
	}
	if req.ReceiverID != receiverID {
		return nil, apperrors.Authorization("only the receiver can respond to a friend request")
	}
	if req.Status != FriendRequestPending {
		return nil, apperrors.InvalidState("friend request has already been answered")
	}

	if accept {
		req.Status = FriendRequestAccepted
	} else {
		req.Status = FriendRequestRejected
	}
	if err := r.db.Save(&req).Error; err != nil {
		return nil, apperrors.Internal("failed to update friend request", err)
	}
	return &req, nil
}

func (r *GormSocialRepository) GetPendingRequests(receiverID uint) ([]FriendRequest, error) {
	var requests []FriendRequest
	err := r.db.Preload("Sender", func(db *gorm.DB) *gorm.DB {
		return db.Select("ID", "Name", "Username", "Country", "Avatar")
	}).Where("receiver_id = ? AND status = ?", receiverID, FriendRequestPending).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetFriends resolves accepted requests in both directions into a flat list.
func (r *GormSocialRepository) GetFriends(userID uint) ([]user.PublicUser, error) {
	var users []user.User
	err := r.db.Model(&user.User{}).
		Joins(`JOIN friend_requests fr ON fr.status = ? AND fr.deleted_at IS NULL
			AND ((fr.sender_id = ? AND fr.receiver_id = users.id) OR (fr.receiver_id = ? AND fr.sender_id = users.id))`,
			FriendRequestAccepted, userID, userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	out := make([]user.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// Unfriend removes the accepted request between the two users, whichever
// direction it was sent in.
func (r *GormSocialRepository) Unfriend(userID, friendID uint) error {
	result := r.db.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
		userID, friendID, friendID, userID, FriendRequestAccepted).
		Delete(&FriendRequest{})
	if result.Error != nil {
		return apperrors.Internal("failed to unfriend", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("you are not friends with this user")
	}
	return nil
}

func (r *GormSocialRepository) AreFriends(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&FriendRequest{}).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			a, b, b, a, FriendRequestAccepted).
		Count(&count).Error
	return count > 0, err
}

// BlockUser records a block and severs any existing friendship.
func (r *GormSocialRepository) BlockUser(blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return apperrors.Validation("you cannot block yourself")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&UserBlock{}).
			Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
			Count(&existing).Error; err != nil {
			return apperrors.Internal("failed to check existing block", err)
		}
		if existing > 0 {
			return apperrors.Conflict("user is already blocked")
		}

		if err := tx.Create(&UserBlock{BlockerID: blockerID, BlockedID: blockedID}).Error; err != nil {
			return apperrors.Internal("failed to block user", err)
		}

		// Blocking ends the friendship and any pending requests.
		if err := tx.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			blockerID, blockedID, blockedID, blockerID).
			Delete(&FriendRequest{}).Error; err != nil {
			return apperrors.Internal("failed to remove friendship", err)
		}
		return nil
	})
}

func (r *GormSocialRepository) UnblockUser(blockerID, blockedID uint) error {
	result := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&UserBlock{})
	if result.Error != nil {
		return apperrors.Internal("failed to unblock user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user is not blocked")
	}
	return nil
}

func (r *GormSocialRepository) IsBlocked(blockerID, blockedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

// CreateInvitation invites a user to an open match. Blocks in either
// direction and duplicate pending invitations are rejected.
func (r *GormSocialRepository) CreateInvitation(matchID, inviterID, inviteeID uint) (*MatchInvitation, error) {
	if inviterID == inviteeID {
		return nil, apperrors.Validation("you cannot invite yourself")
	}

	var invitation *MatchInvitation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var m match.Match
		if err := tx.First(&m, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("match not found")
			}
			return apperrors.Internal("failed to fetch match", err)
		}
		if m.Status != match.StatusMatchOpen {
			return apperrors.InvalidState("invitations can only be sent for open matches")
		}

		var blocked int64
		if err := tx.Model(&UserBlock{}).
			Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
				inviteeID, inviterID, inviterID, inviteeID).
			Count(&blocked).Error; err != nil {
			return apperrors.Internal("failed to check blocks", err)
		}
		if blocked > 0 {
			return apperrors.Authorization("you cannot invite this user")
		}

		var pending int64
		if err := tx.Model(&MatchInvitation{}).
			Where("match_id = ? AND invitee_id = ? AND status = ?", matchID, inviteeID, InvitationPending).
			Count(&pending).Error; err != nil {
			return apperrors.Internal("failed to check existing invitations", err)
		}
		if pending > 0 {
			return apperrors.Conflict("this user already has a pending invitation for the match")
		}

		invitation = &MatchInvitation{
			MatchID:   matchID,
			InviterID: inviterID,
			InviteeID: inviteeID,
			Code:      utils.GenerateRandomToken(inviteCodeLength),
			Status:    InvitationPending,
		}
		if err := tx.Create(invitation).Error; err != nil {
			return apperrors.Internal("failed to create invitation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *GormSocialRepository) GetInvitationByCode(code string) (*MatchInvitation, error) {
	var invitation MatchInvitation
	if err := r.db.Preload("Match").Where("code = ?", code).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("invitation not found")
		}
		return nil, apperrors.Internal("failed to fetch invitation", err)
	}
	return &invitation, nil
}

// RespondToInvitation accepts or declines a pending invitation. Accepting
// does not claim a roster slot; the invitee still picks a team and position
// through the normal join flow.
func (r *GormSocialRepository) RespondToInvitation(code string, inviteeID uint, accept bool) (*MatchInvitation, error) {
	invitation, err := r.GetInvitationByCode(code)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeID != inviteeID {
		return nil, apperrors.Authorization("this invitation is not addressed to you")
	}
	if invitation.Status != InvitationPending {
		return nil, apperrors.InvalidState("invitation has already been answered")
	}

	if accept {
		invitation.Status = InvitationAccepted
	} else {
		invitation.Status = InvitationDeclined
	}
	if err := r.db.Save(invitation).Error; err != nil {
		return nil, apperrors.Internal("failed to update invitation", err)
	}
	return invitation, nil
}

func (r *GormSocialRepository) GetMyInvitations(inviteeID uint) ([]MatchInvitation, error) {
	var invitations []MatchInvitation
	err := r.db.Preload("Match").
		Where("invitee_id = ? AND status = ?", inviteeID, InvitationPending).
		Order("created_at desc").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}
