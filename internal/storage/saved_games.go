package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSavedGame is returned when a game has no suspended session.
var ErrNoSavedGame = errors.New("storage: no saved game")

// SavedGame is a suspended session of a game.
type SavedGame struct {
	GameID    string
	State     []byte
	UpdatedAt time.Time
}

// SaveGame stores the suspended session of a game, replacing any earlier one.
func (s *Store) SaveGame(gameID string, state []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_games (game_id, state, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		gameID, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the suspended session of a game.
// Returns ErrNoSavedGame if there is none.
func (s *Store) LoadGame(gameID string) (*SavedGame, error) {
	var state string
	var updatedAt any
	err := s.db.QueryRow(
		"SELECT state, updated_at FROM saved_games WHERE game_id = ?",
		gameID,
	).Scan(&state, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %s", ErrNoSavedGame, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	return &SavedGame{
		GameID:    gameID,
		State:     []byte(state),
		UpdatedAt: parseTime(updatedAt),
	}, nil
}

// DeleteGame drops the suspended session of a game, if any.
func (s *Store) DeleteGame(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saved_games WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot delete saved game: %w", err)
	}
	return nil
}
