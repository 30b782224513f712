package store

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Write helpers
------------------------------*/

// InsertRound registers a freshly started round.
func (db *DB) InsertRound(ctx context.Context, id uuid.UUID) error {
	_, err := db.Exec(ctx, `
        INSERT INTO rounds(id) VALUES ($1)
        ON CONFLICT (id) DO NOTHING
    `, id)
	return err
}

// RecordAction appends one applied action to the round's log.
func (db *DB) RecordAction(ctx context.Context, roundID uuid.UUID, seq int, action, statusAfter string, handAfter []string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO round_actions(round_id, seq, action, status_after, hand_after)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (round_id, seq) DO NOTHING
    `, roundID, seq, action, statusAfter, handAfter)
	return err
}

// FinishRound stamps the terminal outcome on a round.
func (db *DB) FinishRound(ctx context.Context, id uuid.UUID, outcome string, finalHand []string, drawCount int) error {
	_, err := db.Exec(ctx, `
        UPDATE rounds
           SET ended_at = now(),
               outcome = $2,
               final_hand = $3,
               draw_count = $4
         WHERE id = $1
    `, id, outcome, finalHand, drawCount)
	return err
}

/* -----------------------------
   Read helpers
------------------------------*/

type RoundSummary struct {
	ID        uuid.UUID  `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	Outcome   *string    `json:"outcome"`
	FinalHand []string   `json:"final_hand"`
	DrawCount int        `json:"draw_count"`
}

type RoundAction struct {
	Seq         int       `json:"seq"`
	Action      string    `json:"action"`
	StatusAfter string    `json:"status_after"`
	HandAfter   []string  `json:"hand_after"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecentRounds lists the latest finished rounds, newest first.
func (db *DB) RecentRounds(ctx context.Context, limit int) ([]RoundSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, started_at, ended_at, outcome, final_hand, draw_count
          FROM rounds
         WHERE outcome IS NOT NULL
         ORDER BY started_at DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RoundSummary{}
	for rows.Next() {
		var r RoundSummary
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.EndedAt, &r.Outcome, &r.FinalHand, &r.DrawCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRound fetches one round and its action log. A missing round comes back
// as (nil, nil, nil).
func (db *DB) GetRound(ctx context.Context, id uuid.UUID) (*RoundSummary, []RoundAction, error) {
	var r RoundSummary
	err := db.QueryRow(ctx, `
        SELECT id, started_at, ended_at, outcome, final_hand, draw_count
          FROM rounds WHERE id = $1
    `, id).Scan(&r.ID, &r.StartedAt, &r.EndedAt, &r.Outcome, &r.FinalHand, &r.DrawCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	rows, err := db.Query(ctx, `
        SELECT seq, action, status_after, hand_after, created_at
          FROM round_actions
         WHERE round_id = $1
         ORDER BY seq
    `, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	actions := []RoundAction{}
	for rows.Next() {
		var a RoundAction
		if err := rows.Scan(&a.Seq, &a.Action, &a.StatusAfter, &a.HandAfter, &a.CreatedAt); err != nil {
			return nil, nil, err
		}
		actions = append(actions, a)
	}
	return &r, actions, rows.Err()
}
