package match

import (
	"errors"
	"time"

	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines methods to interact with match and roster data.
// State-changing methods run their read-validate-write sequence inside one
// transaction so concurrent joiners observe a consistent roster tally.
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetOpenMatches(page, pageSize int) ([]Match, int64, error)
	GetCreatedMatches(userID uint, page, pageSize int) ([]Match, int64, error)
	GetJoinedMatches(userID uint, page, pageSize int) ([]Match, int64, error)

	JoinMatch(matchID, userID uint, team TeamSide, position Position) (*Participant, error)
	LeaveMatch(matchID, userID uint) (*Match, error)
	CancelMatch(matchID, callerID uint) (*Match, error)
	CompleteMatch(matchID, callerID uint) (*Match, error)

	GetParticipants(matchID uint) ([]Participant, error)
	ExpireStaleMatches() (int64, error)
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// CreateMatch validates the creation invariants and inserts the match with
// status open. The case-insensitive party-name check and the insert share one
// transaction; the unique index on party_name_key is the backstop.
func (r *GormMatchRepository) CreateMatch(m *Match) error {
	if err := ValidatePlayersNeeded(m.PlayersNeeded); err != nil {
		return err
	}
	if !m.ScheduledAt.After(time.Now()) {
		return apperrors.Validation("scheduled time must be in the future")
	}
	if m.PartyName == "" {
		m.PartyName = DefaultPartyName(m.Location)
	}
	m.PartyNameKey = PartyNameKeyFor(m.PartyName)
	m.Status = StatusMatchOpen

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Match{}).Where("party_name_key = ?", m.PartyNameKey).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Conflict("a match with this party name already exists")
		}
		return tx.Create(m).Error
	})
}

// GetMatchByID retrieves a match with its roster. Returns (nil, nil) when the
// match does not exist; callers branch on nil.
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	result := r.db.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("ID", "Name", "Username", "Country", "Avatar")
		}).
		Preload("Venue").
		Preload("Participants").
		Preload("Participants.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("ID", "Name", "Username", "Country", "Avatar")
		}).
		First(&m, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

// GetOpenMatches lists joinable matches, soonest first.
func (r *GormMatchRepository) GetOpenMatches(page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("status = ?", StatusMatchOpen)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("ID", "Name", "Username", "Country", "Avatar")
		}).
		Preload("Venue").
		Preload("Participants").
		Order("scheduled_at asc").
		Offset(offset).Limit(pageSize).
		Find(&matches)

	if result.Error != nil {
		return nil, 0, result.Error
	}
	return matches, total, nil
}

// GetCreatedMatches lists matches created by the user, any status.
func (r *GormMatchRepository) GetCreatedMatches(userID uint, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("creator_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.
		Preload("Venue").
		Preload("Participants").
		Order("scheduled_at desc").
		Offset(offset).Limit(pageSize).
		Find(&matches)

	if result.Error != nil {
		return nil, 0, result.Error
	}
	return matches, total, nil
}

// GetJoinedMatches lists matches the user currently participates in.
func (r *GormMatchRepository) GetJoinedMatches(userID uint, page, pageSize int) ([]Match, int64, error) {
	query := r.db.Model(&Match{}).
		Joins("JOIN participants ON participants.match_id = matches.id AND participants.user_id = ?", userID)

	var total int64
	if err := query.Distinct("matches.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	var matchIDs []uint
	err := query.Distinct("matches.id").
		Offset(offset).Limit(pageSize).
		Pluck("matches.id", &matchIDs).Error
	if err != nil {
		return nil, 0, err
	}

	var matches []Match
	if len(matchIDs) > 0 {
		err = r.db.
			Preload("Creator", func(db *gorm.DB) *gorm.DB {
				return db.Select("ID", "Name", "Username", "Country", "Avatar")
			}).
			Preload("Venue").
			Preload("Participants").
			Where("id IN ?", matchIDs).
			Order("scheduled_at desc").
			Find(&matches).Error
		if err != nil {
			return nil, 0, err
		}
	}

	return matches, total, nil
}

// tallyRoster reads the participant counts backing the capacity checks.
// Must be called inside the join transaction.
func tallyRoster(tx *gorm.DB, matchID uint, team TeamSide, position Position) (rosterCounts, error) {
	var counts rosterCounts
	if err := tx.Model(&Participant{}).Where("match_id = ?", matchID).Count(&counts.Total).Error; err != nil {
		return counts, err
	}
	if err := tx.Model(&Participant{}).Where("match_id = ? AND team = ?", matchID, team).Count(&counts.Team).Error; err != nil {
		return counts, err
	}
	if err := tx.Model(&Participant{}).Where("match_id = ? AND team = ? AND position = ?", matchID, team, position).Count(&counts.TeamPosition).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// JoinMatch claims a team/position slot for the user. All checks and the
// insert run in one transaction with the match row locked, so two concurrent
// joiners cannot both fill the last slot or both claim the sole goalkeeper
// position. When the new total reaches PlayersNeeded the match flips to full
// in the same transaction.
func (r *GormMatchRepository) JoinMatch(matchID, userID uint, team TeamSide, position Position) (*Participant, error) {
	var participant *Participant

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var m Match
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("match not found")
			}
			return err
		}

		if m.Status != StatusMatchOpen {
			return apperrors.InvalidState("match is not open for joining")
		}

		var existing int64
		if err := tx.Model(&Participant{}).Where("match_id = ? AND user_id = ?", matchID, userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.Conflict("you have already joined this match")
		}

		counts, err := tallyRoster(tx, matchID, team, position)
		if err != nil {
			return err
		}
		if err := checkJoinCapacity(m.PlayersNeeded, counts, position); err != nil {
			return err
		}

		p := &Participant{
			MatchID:  matchID,
			UserID:   userID,
			Team:     team,
			Position: position,
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if counts.Total+1 == int64(m.PlayersNeeded) {
			if err := tx.Model(&Match{}).Where("id = ?", matchID).Update("status", StatusMatchFull).Error; err != nil {
				return err
			}
		}

		participant = p
		return nil
	})

	if err != nil {
		return nil, err
	}
	return participant, nil
}

// LeaveMatch removes the caller's participant row. Leaving a full match
// unconditionally reopens it; any departure from full reopens joining.
func (r *GormMatchRepository) LeaveMatch(matchID, userID uint) (*Match, error) {
	var m Match

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("match not found")
			}
			return err
		}

		if m.IsTerminal() {
			return apperrors.InvalidState("match is already " + string(m.Status))
		}

		var p Participant
		if err := tx.Where("match_id = ? AND user_id = ?", matchID, userID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("you are not a participant of this match")
			}
			return err
		}

		// Hard delete so the (match, user) uniqueness holds across rejoin cycles.
		if err := tx.Unscoped().Delete(&p).Error; err != nil {
			return err
		}

		if m.Status == StatusMatchFull {
			m.Status = StatusMatchOpen
			if err := tx.Model(&Match{}).Where("id = ?", matchID).Update("status", StatusMatchOpen).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &m, nil
}

// setTerminalStatus moves a match into cancelled or completed. Only the
// creator may do this, and terminal states are absorbing: a second call on an
// already-terminal match fails, never silently succeeds.
func (r *GormMatchRepository) setTerminalStatus(matchID, callerID uint, status MatchStatus) (*Match, error) {
	var m Match

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("match not found")
			}
			return err
		}

		if m.CreatorID != callerID {
			return apperrors.Authorization("only the match creator may do this")
		}
		if m.IsTerminal() {
			return apperrors.InvalidState("match is already " + string(m.Status))
		}

		m.Status = status
		return tx.Model(&Match{}).Where("id = ?", matchID).Update("status", status).Error
	})

	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CancelMatch cancels an open or full match. Creator only.
func (r *GormMatchRepository) CancelMatch(matchID, callerID uint) (*Match, error) {
	return r.setTerminalStatus(matchID, callerID, StatusMatchCancelled)
}

// CompleteMatch marks a match as played. Creator only. Completed matches feed
// the rating pipeline.
func (r *GormMatchRepository) CompleteMatch(matchID, callerID uint) (*Match, error) {
	return r.setTerminalStatus(matchID, callerID, StatusMatchCompleted)
}

// GetParticipants returns the roster with display users resolved.
func (r *GormMatchRepository) GetParticipants(matchID uint) ([]Participant, error) {
	var participants []Participant
	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("ID", "Name", "Username", "Country", "Avatar")
		}).
		Where("match_id = ?", matchID).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// ExpireStaleMatches cancels open or full matches whose scheduled time has
// passed without the creator completing them.
func (r *GormMatchRepository) ExpireStaleMatches() (int64, error) {
	result := r.db.Model(&Match{}).
		Where("scheduled_at < ? AND status IN ?", time.Now(), []MatchStatus{StatusMatchOpen, StatusMatchFull}).
		Update("status", StatusMatchCancelled)
	return result.RowsAffected, result.Error
}
