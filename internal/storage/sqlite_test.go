package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRound(t *testing.T, store *Store, gameID, session string, round, score int, outcome string) {
	t.Helper()
	_, err := store.SaveRound(RoundRecord{
		GameID:    gameID,
		SessionID: session,
		Round:     round,
		Score:     score,
		Level:     1 + score/200,
		Outcome:   outcome,
		Ticks:     1000 + score,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saveRound(t, store, "shooter", "s1", 1, 100, "lose")
	saveRound(t, store, "shooter", "s1", 2, 50, "lose")
	saveRound(t, store, "shooter", "s2", 1, 700, "win")
	saveRound(t, store, "shooter_blitz", "s3", 1, 250, "win")

	scores, err := store.TopScores("shooter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(scores))
	}

	// Sorted descending
	if scores[0].Score != 700 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
	if scores[0].Outcome != "win" || scores[0].SessionID != "s2" || scores[0].Level != 4 {
		t.Errorf("Round fields not persisted: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	blitz, err := store.TopScores("shooter_blitz", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(blitz) != 1 {
		t.Errorf("Expected 1 blitz round, got %d", len(blitz))
	}
}

func TestStoreSaveRoundRequiresIDs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(RoundRecord{GameID: "shooter", Score: 10}); err == nil {
		t.Error("SaveRound() without a session should fail")
	}
	if _, err := store.SaveRound(RoundRecord{SessionID: "s", Score: 10}); err == nil {
		t.Error("SaveRound() without a game should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveRound(t, store, "test", "s", i+1, (i+1)*100, "lose")
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}
}

func TestStoreTopScoresTieBreak(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundRecord{GameID: "shooter", SessionID: "slow", Score: 300, Outcome: "lose", Ticks: 9000})
	store.SaveRound(RoundRecord{GameID: "shooter", SessionID: "fast", Score: 300, Outcome: "lose", Ticks: 3000})

	scores, err := store.TopScores("shooter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].SessionID != "fast" {
		t.Errorf("Faster round should rank first on equal score: %+v", scores)
	}
}

func TestStoreSessionRounds(t *testing.T) {
	store := openTestStore(t)

	saveRound(t, store, "shooter", "abc", 2, 40, "lose")
	saveRound(t, store, "shooter", "abc", 1, 90, "lose")
	saveRound(t, store, "shooter", "other", 1, 10, "lose")

	rounds, err := store.SessionRounds("abc")
	if err != nil {
		t.Fatalf("SessionRounds() failed: %v", err)
	}
	if len(rounds) != 2 || rounds[0].Round != 1 || rounds[1].Round != 2 {
		t.Errorf("Expected rounds 1 and 2 in order, got %+v", rounds)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	saveRound(t, store, "shooter", "s", 1, 100, "lose")
	saveRound(t, store, "shooter", "s", 2, 300, "lose")
	saveRound(t, store, "shooter", "s", 3, 200, "lose")

	high, err = store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveRound(t, store, "shooter", "s", 1, 100, "lose")
	saveRound(t, store, "shooter", "s", 2, 200, "lose")
	saveRound(t, store, "shooter_blitz", "s", 1, 300, "win")

	if err := store.ClearScores("shooter"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("shooter", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(classic))
	}

	blitz, _ := store.TopScores("shooter_blitz", 10)
	if len(blitz) != 1 {
		t.Errorf("Blitz rounds should not be affected by clearing classic")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("shooter")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	saveRound(t, store, "shooter", "s", 1, 100, "lose")
	saveRound(t, store, "shooter", "s", 2, 700, "win")
	saveRound(t, store, "shooter", "s", 3, 400, "lose")

	stats, err := store.GetGameStats("shooter")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.Wins != 1 || stats.HighScore != 700 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 400 {
		t.Errorf("AvgScore = %v, expected 400", stats.AvgScore)
	}
	if stats.BestLevel != 4 {
		t.Errorf("BestLevel = %d, expected 4", stats.BestLevel)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
