package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestErrorTaxonomyDistinct(t *testing.T) {
	err := roundClosedf("round is not open for voting")
	var closed RoundClosedError
	if !errors.As(err, &closed) {
		t.Fatalf("expected RoundClosedError, got %v", err)
	}
	var validation ValidationError
	if errors.As(err, &validation) {
		t.Fatalf("RoundClosedError must not match ValidationError")
	}
}

func TestErrorsCarryMessage(t *testing.T) {
	err := conflictf("another round is already open")
	if err.Error() != "another round is already open" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	if !isUniqueViolation(unique) {
		t.Fatalf("expected 23505 to count as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", unique)) {
		t.Fatalf("expected wrapped 23505 to count as unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}
