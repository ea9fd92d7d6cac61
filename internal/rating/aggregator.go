package rating

import (
	"log"
	"math"

	"github.com/tunislock/tunislock-api/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Aggregator recomputes a user's skill profile from the full set of ratings
// they have received. Recomputes run on a single background worker fed by a
// buffered queue; scheduling never blocks request handlers.
type Aggregator struct {
	db    *gorm.DB
	repo  RatingRepository
	queue chan uint
	done  chan struct{}
}

// NewAggregator creates an aggregator with the given queue capacity.
func NewAggregator(db *gorm.DB, repo RatingRepository, queueSize int) *Aggregator {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Aggregator{
		db:    db,
		repo:  repo,
		queue: make(chan uint, queueSize),
		done:  make(chan struct{}),
	}
}

// Start launches the background worker.
func (a *Aggregator) Start() {
	go func() {
		for userID := range a.queue {
			if err := a.Recompute(userID); err != nil {
				log.Printf("rating aggregator: recompute for user %d failed: %v", userID, err)
			}
		}
		close(a.done)
	}()
}

// Stop closes the queue and waits for the worker to drain it.
func (a *Aggregator) Stop() {
	close(a.queue)
	<-a.done
}

// Schedule enqueues a recompute for the user. When the queue is full the
// request is dropped; the recompute is a full recalculation, so any later
// rating for the same user repairs the skipped run.
func (a *Aggregator) Schedule(userID uint) {
	select {
	case a.queue <- userID:
	default:
		log.Printf("rating aggregator: queue full, dropping recompute for user %d", userID)
	}
}

// Recompute rebuilds the user's skill profile from every rating they have
// received. It is idempotent; running it twice yields the same profile.
func (a *Aggregator) Recompute(userID uint) error {
	ratings, err := a.repo.GetRatingsForUser(userID)
	if err != nil {
		return err
	}

	profile := user.SkillProfile{UserID: userID}
	profile.RatingsCount = len(ratings)

	sums := make(map[string]int, 6)
	counts := make(map[string]int, 6)
	for i := range ratings {
		for name, g := range ratings[i].Grades() {
			score, ok := g.Score()
			if !ok {
				continue
			}
			sums[name] += score
			counts[name]++
		}
	}

	attr := func(name string) *int {
		n := counts[name]
		if n == 0 {
			return nil
		}
		v := int(math.Round(float64(sums[name]) / float64(n)))
		return &v
	}

	profile.Speed = attr("speed")
	profile.Defense = attr("defense")
	profile.Offense = attr("offense")
	profile.Shooting = attr("shooting")
	profile.Dribbling = attr("dribbling")
	profile.Passing = attr("passing")

	// Overall is the mean of the attributes that have data, not of all six.
	var overallSum, overallN int
	for _, p := range []*int{profile.Speed, profile.Defense, profile.Offense, profile.Shooting, profile.Dribbling, profile.Passing} {
		if p != nil {
			overallSum += *p
			overallN++
		}
	}
	if overallN > 0 {
		v := int(math.Round(float64(overallSum) / float64(overallN)))
		profile.OverallScore = &v
	}

	return a.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"speed", "defense", "offense", "shooting", "dribbling", "passing",
			"overall_score", "ratings_count", "updated_at",
		}),
	}).Create(&profile).Error
}
