// Package game implements the round lifecycle and voting engine: the round
// state machine, the vote ledger, scoring, and the cumulative leaderboard.
// All cross-caller invariants (single open round per game, one vote per alias
// per round, exactly-once scoring) are enforced by Postgres constraints and
// atomic check-and-set updates, never by in-process locking, so multiple
// server instances can share one database.
package game

import (
	"time"

	"pickem-live/internal/config"

	"gorm.io/gorm"
)

type Service struct {
	db               *gorm.DB
	notifier         Notifier
	pointsPerCorrect int
}

func NewService(conn *gorm.DB, notifier Notifier, cfg config.Config) *Service {
	points := cfg.PointsPerCorrect
	if points <= 0 {
		points = 1
	}
	return &Service{
		db:               conn,
		notifier:         notifier,
		pointsPerCorrect: points,
	}
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
