package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pickem-live/internal/db"
	"pickem-live/internal/game"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, data
}

func decodeJSON(t *testing.T, data []byte, dest any) {
	t.Helper()
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("decode response %s: %v", data, err)
	}
}

var errFakeNotWired = errors.New("fake core: method not wired")

// fakeCore lets handler tests script the engine's behavior per method.
type fakeCore struct {
	createGame     func(name string) (*db.Game, error)
	gameByID       func(gameID string) (*db.Game, error)
	endGame        func(gameID string) error
	createRound    func(gameID, title, hintText string, options []string) (*db.Round, error)
	openRound      func(roundID string) error
	scoreRound     func(roundID, correctOptionID string) error
	activeRound    func(gameID string) (*db.Round, error)
	listRounds     func(gameID string) ([]db.Round, error)
	castVote       func(roundID, aliasID, optionID string) error
	votesForRound  func(roundID string) (map[string]string, error)
	tallyForRound  func(roundID string) (*game.Tally, error)
	standings      func(gameID string, limit int) ([]game.StandingRow, error)
	createAlias    func(gameID, ownerName, name string) (*db.Alias, error)
	aliasesForGame func(gameID, ownerName string) ([]db.Alias, error)
	deactivate     func(aliasID string) error
	byDisplayToken func(token string) (*db.Game, error)
	tokenByCode    func(code string) (string, error)
	eventsForGame  func(gameID string, limit int) ([]db.Event, error)
}

func (f *fakeCore) CreateGame(name string) (*db.Game, error) {
	if f.createGame == nil {
		return nil, errFakeNotWired
	}
	return f.createGame(name)
}

func (f *fakeCore) GameByID(gameID string) (*db.Game, error) {
	if f.gameByID == nil {
		return nil, errFakeNotWired
	}
	return f.gameByID(gameID)
}

func (f *fakeCore) EndGame(gameID string) error {
	if f.endGame == nil {
		return errFakeNotWired
	}
	return f.endGame(gameID)
}

func (f *fakeCore) CreateRound(gameID, title, hintText string, options []string) (*db.Round, error) {
	if f.createRound == nil {
		return nil, errFakeNotWired
	}
	return f.createRound(gameID, title, hintText, options)
}

func (f *fakeCore) OpenRound(roundID string) error {
	if f.openRound == nil {
		return errFakeNotWired
	}
	return f.openRound(roundID)
}

func (f *fakeCore) ScoreRound(roundID, correctOptionID string) error {
	if f.scoreRound == nil {
		return errFakeNotWired
	}
	return f.scoreRound(roundID, correctOptionID)
}

func (f *fakeCore) ActiveRound(gameID string) (*db.Round, error) {
	if f.activeRound == nil {
		return nil, errFakeNotWired
	}
	return f.activeRound(gameID)
}

func (f *fakeCore) ListRounds(gameID string) ([]db.Round, error) {
	if f.listRounds == nil {
		return nil, errFakeNotWired
	}
	return f.listRounds(gameID)
}

func (f *fakeCore) CastVote(roundID, aliasID, optionID string) error {
	if f.castVote == nil {
		return errFakeNotWired
	}
	return f.castVote(roundID, aliasID, optionID)
}

func (f *fakeCore) VotesForRound(roundID string) (map[string]string, error) {
	if f.votesForRound == nil {
		return nil, errFakeNotWired
	}
	return f.votesForRound(roundID)
}

func (f *fakeCore) TallyForRound(roundID string) (*game.Tally, error) {
	if f.tallyForRound == nil {
		return nil, errFakeNotWired
	}
	return f.tallyForRound(roundID)
}

func (f *fakeCore) Standings(gameID string, limit int) ([]game.StandingRow, error) {
	if f.standings == nil {
		return nil, errFakeNotWired
	}
	return f.standings(gameID, limit)
}

func (f *fakeCore) CreateAlias(gameID, ownerName, name string) (*db.Alias, error) {
	if f.createAlias == nil {
		return nil, errFakeNotWired
	}
	return f.createAlias(gameID, ownerName, name)
}

func (f *fakeCore) AliasesForGame(gameID, ownerName string) ([]db.Alias, error) {
	if f.aliasesForGame == nil {
		return nil, errFakeNotWired
	}
	return f.aliasesForGame(gameID, ownerName)
}

func (f *fakeCore) DeactivateAlias(aliasID string) error {
	if f.deactivate == nil {
		return errFakeNotWired
	}
	return f.deactivate(aliasID)
}

func (f *fakeCore) GameByDisplayToken(token string) (*db.Game, error) {
	if f.byDisplayToken == nil {
		return nil, errFakeNotWired
	}
	return f.byDisplayToken(token)
}

func (f *fakeCore) DisplayTokenByJoinCode(code string) (string, error) {
	if f.tokenByCode == nil {
		return "", errFakeNotWired
	}
	return f.tokenByCode(code)
}

func (f *fakeCore) EventsForGame(gameID string, limit int) ([]db.Event, error) {
	if f.eventsForGame == nil {
		return nil, errFakeNotWired
	}
	return f.eventsForGame(gameID, limit)
}
