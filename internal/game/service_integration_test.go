package game

import (
	"errors"
	"os"
	"testing"

	"pickem-live/internal/config"
	"pickem-live/internal/db"
)

// These tests run against a real Postgres because the invariants they check
// (single open round, vote upsert, exactly-once scoring) live in the schema
// and in transactional check-and-set updates, not in process. They skip when
// DATABASE_URL is not set.

func newIntegrationService(t *testing.T) *Service {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	cfg := config.Default()
	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(conn, nil, cfg)
}

func optionByLabel(t *testing.T, round *db.Round, label string) db.Option {
	t.Helper()
	for _, option := range round.Options {
		if option.Label == label {
			return option
		}
	}
	t.Fatalf("round has no option %q (have %#v)", label, round.Options)
	return db.Option{}
}

func TestRoundLifecycle(t *testing.T) {
	s := newIntegrationService(t)

	g, err := s.CreateGame("Friday Night")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	alpha, err := s.CreateAlias(g.ID, "ana", "Alpha")
	if err != nil {
		t.Fatalf("create alias: %v", err)
	}
	bravo, err := s.CreateAlias(g.ID, "ben", "Bravo")
	if err != nil {
		t.Fatalf("create alias: %v", err)
	}

	round1, err := s.CreateRound(g.ID, "Opener", "", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	round2, err := s.CreateRound(g.ID, "Closer", "", []string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}
	if round1.RoundNumber != 1 || round2.RoundNumber != 2 {
		t.Fatalf("round numbers must be gapless from 1, got %d and %d",
			round1.RoundNumber, round2.RoundNumber)
	}

	if err := s.OpenRound(round1.ID); err != nil {
		t.Fatalf("open round: %v", err)
	}

	// The partial unique index allows only one OPEN round per game.
	err = s.OpenRound(round2.ID)
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError opening a second round, got %v", err)
	}

	red := optionByLabel(t, round1, "Red")
	blue := optionByLabel(t, round1, "Blue")

	if err := s.CastVote(round1.ID, alpha.ID, red.ID); err != nil {
		t.Fatalf("cast vote: %v", err)
	}
	if err := s.CastVote(round1.ID, bravo.ID, blue.ID); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	// Re-voting replaces the previous choice without growing the total.
	if err := s.CastVote(round1.ID, alpha.ID, blue.ID); err != nil {
		t.Fatalf("re-vote: %v", err)
	}
	tally, err := s.TallyForRound(round1.ID)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if tally.Total != 2 {
		t.Fatalf("re-vote must not change the total, got %d", tally.Total)
	}
	for _, oc := range tally.Options {
		switch oc.OptionID {
		case blue.ID:
			if oc.Count != 2 {
				t.Fatalf("expected 2 votes on Blue, got %d", oc.Count)
			}
		case red.ID:
			if oc.Count != 0 {
				t.Fatalf("abandoned option must count 0, got %d", oc.Count)
			}
		}
	}

	var voteCount int64
	if err := s.db.Model(&db.Vote{}).
		Where("round_id = ? AND alias_id = ?", round1.ID, alpha.ID).
		Count(&voteCount).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if voteCount != 1 {
		t.Fatalf("an alias holds one vote row per round, got %d", voteCount)
	}
	var vote db.Vote
	if err := s.db.First(&vote, "round_id = ? AND alias_id = ?", round1.ID, alpha.ID).Error; err != nil {
		t.Fatalf("load vote: %v", err)
	}
	if vote.OptionID != blue.ID {
		t.Fatalf("re-vote must replace the stored choice, got option %s", vote.OptionID)
	}
	if vote.OwnerName != "ana" {
		t.Fatalf("vote must carry the alias owner, got %q", vote.OwnerName)
	}

	if err := s.ScoreRound(round1.ID, blue.ID); err != nil {
		t.Fatalf("score round: %v", err)
	}
	standings, err := s.Standings(g.ID, 0)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 correct voters on the board, got %d", len(standings))
	}
	if standings[0].AliasName != "Alpha" || standings[1].AliasName != "Bravo" {
		t.Fatalf("ties break by alias name ascending, got %#v", standings)
	}
	for _, row := range standings {
		if row.Points != 1 || row.CorrectCount != 1 {
			t.Fatalf("each correct voter earns one point, got %#v", row)
		}
	}

	// Scoring is exactly-once: a second attempt fails and awards nothing.
	err = s.ScoreRound(round1.ID, blue.ID)
	var invalid InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError on re-score, got %v", err)
	}
	standings, err = s.Standings(g.ID, 0)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	for _, row := range standings {
		if row.Points != 1 {
			t.Fatalf("re-score must not change points, got %#v", row)
		}
	}

	err = s.CastVote(round1.ID, alpha.ID, red.ID)
	var closed RoundClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("expected RoundClosedError voting on a scored round, got %v", err)
	}

	// With round 1 scored the slot is free again.
	if err := s.OpenRound(round2.ID); err != nil {
		t.Fatalf("open second round after scoring: %v", err)
	}
	active, err := s.ActiveRound(g.ID)
	if err != nil {
		t.Fatalf("active round: %v", err)
	}
	if active == nil || active.ID != round2.ID {
		t.Fatalf("expected round 2 active, got %#v", active)
	}
}

func TestEndedGameRejectsRoundWrites(t *testing.T) {
	s := newIntegrationService(t)

	g, err := s.CreateGame("Last Call")
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	round, err := s.CreateRound(g.ID, "", "", []string{"Yes", "No"})
	if err != nil {
		t.Fatalf("create round: %v", err)
	}

	if err := s.EndGame(g.ID); err != nil {
		t.Fatalf("end game: %v", err)
	}
	if err := s.EndGame(g.ID); err != nil {
		t.Fatalf("ending an ended game is a no-op, got %v", err)
	}

	err = s.OpenRound(round.ID)
	var invalid InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError opening a round in an ended game, got %v", err)
	}

	_, err = s.CreateRound(g.ID, "", "", []string{"Yes", "No"})
	var validation ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError creating a round in an ended game, got %v", err)
	}

	var notFound NotFoundError
	if err := s.EndGame("00000000-0000-0000-0000-000000000000"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for an unknown game, got %v", err)
	}
}
