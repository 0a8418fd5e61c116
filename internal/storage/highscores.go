package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// BestScore returns the recorded best score of a game. Games that never
// recorded one fall back to the top of their leaderboard.
func (s *Store) BestScore(gameID string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return s.HighScore(gameID)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore records a new best score for a game, replacing the previous one.
func (s *Store) SetBestScore(gameID string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set best score: %w", err)
	}
	return nil
}

// GameHighScores is the best score of one game.
type GameHighScores struct {
	store  *Store
	gameID string
}

// HighScores returns the best score record of a game.
func (s *Store) HighScores(gameID string) *GameHighScores {
	return &GameHighScores{store: s, gameID: gameID}
}

// HighScore returns the best recorded score.
func (h *GameHighScores) HighScore() (int, error) {
	return h.store.BestScore(h.gameID)
}

// RecordHighScore stores a new best score.
func (h *GameHighScores) RecordHighScore(score int) error {
	return h.store.SetBestScore(h.gameID, score)
}
