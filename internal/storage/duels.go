package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// DuelResult is the outcome of one artillery duel.
type DuelResult struct {
	ID         int64
	MatchID    string
	Mode       string // "cpu" or "hotseat"
	Player     string // Left-hand character name
	Opponent   string // Right-hand character name
	Winner     string // Empty when the duel was abandoned
	PlayerHP   int
	OpponentHP int
	Shots      int
	EndReason  string // "completed" or "abandoned"
	Duration   int    // Duration in seconds
	CreatedAt  time.Time
}

// DuelSaver persists finished duels.
type DuelSaver interface {
	SaveDuel(result DuelResult) (int64, error)
}

var _ DuelSaver = (*Store)(nil)

const duelColumns = `id, match_id, mode, player, opponent, winner,
	player_hp, opponent_hp, shots, end_reason, duration_secs, created_at`

// SaveDuel records the result of a duel.
// Returns the ID of the inserted record.
func (s *Store) SaveDuel(result DuelResult) (int64, error) {
	var winner any
	if result.Winner != "" {
		winner = result.Winner
	}

	res, err := s.db.Exec(
		`INSERT INTO duels
		 (match_id, mode, player, opponent, winner, player_hp, opponent_hp, shots, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.Mode,
		result.Player,
		result.Opponent,
		winner,
		result.PlayerHP,
		result.OpponentHP,
		result.Shots,
		result.EndReason,
		result.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save duel: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// DuelByMatchID retrieves a duel by its match ID.
// Returns nil without error when no such duel exists.
func (s *Store) DuelByMatchID(matchID string) (*DuelResult, error) {
	row := s.db.QueryRow(
		`SELECT `+duelColumns+` FROM duels WHERE match_id = ?`,
		matchID,
	)

	result, err := scanDuel(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duel: %w", err)
	}
	return &result, nil
}

// RecentDuels retrieves the most recent duels, newest first.
func (s *Store) RecentDuels(limit int) ([]DuelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+duelColumns+`
		 FROM duels
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duels: %w", err)
	}
	defer rows.Close()

	var results []DuelResult
	for rows.Next() {
		result, err := scanDuel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// DuelStats holds win/loss totals per character name.
type DuelStats struct {
	Name   string
	Played int
	Won    int
}

// CharacterStats aggregates completed duels by the left-hand character.
func (s *Store) CharacterStats() ([]DuelStats, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*), SUM(CASE WHEN winner = player THEN 1 ELSE 0 END)
		 FROM duels
		 WHERE end_reason = 'completed'
		 GROUP BY player
		 ORDER BY player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duel stats: %w", err)
	}
	defer rows.Close()

	var out []DuelStats
	for rows.Next() {
		var st DuelStats
		if err := rows.Scan(&st.Name, &st.Played, &st.Won); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDuel(row rowScanner) (DuelResult, error) {
	var result DuelResult
	var winner sql.NullString
	var createdAt any

	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.Mode,
		&result.Player,
		&result.Opponent,
		&winner,
		&result.PlayerHP,
		&result.OpponentHP,
		&result.Shots,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}

	if winner.Valid {
		result.Winner = winner.String
	}
	result.CreatedAt = parseTimestamp(createdAt)
	return result, nil
}
