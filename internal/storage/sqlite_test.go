package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesNestedDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), ".marbles", "data", "scores.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, dbPath)
}

// TestRecordsSurviveReopen plays the platform flow across two runs: a
// finished game leaves a score and a best score, an unfinished one a save.
func TestRecordsSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	first, err := Open(dbPath)
	require.NoError(t, err)
	_, err = first.SaveScore("marbles", 42)
	require.NoError(t, err)
	require.NoError(t, first.HighScores("marbles").RecordHighScore(42))
	require.NoError(t, first.SaveGame("alice/marbles_mini", []byte("version: 1\n")))
	require.NoError(t, first.Close())

	// Migrations run again on an existing database.
	second, err := Open(dbPath)
	require.NoError(t, err, "reopen")
	defer second.Close()

	best, err := second.HighScores("marbles").HighScore()
	require.NoError(t, err)
	assert.Equal(t, 42, best)

	scores, err := second.TopScores("marbles", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 42, scores[0].Score)

	saved, err := second.LoadGame("alice/marbles_mini")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(saved.State))
}

func TestLeaderboardPerVariant(t *testing.T) {
	store := openTestStore(t)
	finished := []struct {
		gameID string
		score  int
	}{
		{"marbles", 100},
		{"marbles", 50},
		{"marbles_mini", 500},
		{"marbles", 200},
		{"marbles", 150},
	}
	for _, f := range finished {
		_, err := store.SaveScore(f.gameID, f.score)
		require.NoError(t, err, "SaveScore(%s, %d)", f.gameID, f.score)
	}

	tests := []struct {
		name   string
		gameID string
		limit  int
		want   []int
	}{
		{"classic ordered", "marbles", 10, []int{200, 150, 100, 50}},
		{"classic top two", "marbles", 2, []int{200, 150}},
		{"mini", "marbles_mini", 10, []int{500}},
		{"unplayed", "marbles_huge", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := store.TopScores(tt.gameID, tt.limit)
			require.NoError(t, err)
			require.Len(t, scores, len(tt.want))
			for i, s := range scores {
				assert.Equal(t, tt.want[i], s.Score, "score %d", i)
				assert.Equal(t, tt.gameID, s.GameID, "score %d", i)
			}
		})
	}

	all, err := store.AllScores("marbles")
	require.NoError(t, err)
	require.Len(t, all, 4, "every classic score")
	assert.Equal(t, 200, all[0].Score, "best first")
	assert.Equal(t, 50, all[3].Score)
}

func TestLeaderboardMaxIsBestFallback(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("marbles")
	require.NoError(t, err)
	require.Zero(t, high, "no score before any game")

	for _, score := range []int{300, 120} {
		_, err := store.SaveScore("marbles", score)
		require.NoError(t, err)
	}

	// No best score recorded yet: the leaderboard provides it.
	best, err := store.BestScore("marbles")
	require.NoError(t, err)
	assert.Equal(t, 300, best)
}

func TestClearScoresKeepsSavesAndOtherVariants(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScore("marbles", 100)
	require.NoError(t, err)
	_, err = store.SaveScore("marbles_mini", 300)
	require.NoError(t, err)
	require.NoError(t, store.SetBestScore("marbles", 100))
	require.NoError(t, store.SaveGame("marbles", []byte("version: 1\n")))

	require.NoError(t, store.ClearScores("marbles"))

	scores, _ := store.TopScores("marbles", 10)
	assert.Empty(t, scores, "classic scores left after clear")
	scores, _ = store.TopScores("marbles_mini", 10)
	assert.Len(t, scores, 1, "clearing classic should keep mini scores")
	_, err = store.LoadGame("marbles")
	assert.NoError(t, err, "clearing scores should keep the saved session")
}
