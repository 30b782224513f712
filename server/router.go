package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blackjack-table/server/engine"
	"blackjack-table/server/store"
)

// liveRound pairs an in-progress round with its action sequence counter.
// The round itself is single-threaded; the table mutex serializes the
// handlers that reach it.
type liveRound struct {
	round *engine.Round
	seq   int
}

type roundTable struct {
	mu     sync.Mutex
	rounds map[uuid.UUID]*liveRound
	seed   int64
}

type roundView struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	Hand           []string `json:"hand"`
	PossibleTotals []int    `json:"possible_totals"`
	CardsRemaining int      `json:"cards_remaining"`
}

func handStrings(cards []engine.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func viewOf(id uuid.UUID, r *engine.Round) roundView {
	return roundView{
		ID:             id.String(),
		Status:         string(r.Status()),
		Hand:           handStrings(r.Hand()),
		PossibleTotals: r.Totals(),
		CardsRemaining: r.CardsRemaining(),
	}
}

func Router(db *store.DB, seed int64) http.Handler {
	table := &roundTable{rounds: make(map[uuid.UUID]*liveRound), seed: seed}
	r := chi.NewRouter()

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	// Start a round on a fresh shuffled deck.
	r.Post("/api/rounds", func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New()
		round := engine.Start(engine.NewShuffledDeck(table.seed))

		table.mu.Lock()
		table.rounds[id] = &liveRound{round: round}
		table.mu.Unlock()

		if db != nil {
			if err := db.InsertRound(req.Context(), id); err != nil {
				log.Printf("insert round %s: %v", id, err)
			}
		}
		writeJSON(w, viewOf(id, round))
	})

	// Current view of a live round.
	r.Get("/api/rounds/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "bad round id", http.StatusBadRequest)
			return
		}
		table.mu.Lock()
		lr, ok := table.rounds[id]
		var view roundView
		if ok {
			view = viewOf(id, lr.round)
		}
		table.mu.Unlock()
		if !ok {
			http.Error(w, "no such round", http.StatusNotFound)
			return
		}
		writeJSON(w, view)
	})

	// Apply one raw command to a live round. Unrecognized input leaves the
	// round untouched and the response says so.
	r.Post("/api/rounds/{id}/actions", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "bad round id", http.StatusBadRequest)
			return
		}
		var body struct {
			Action string `json:"action"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}

		table.mu.Lock()
		lr, ok := table.rounds[id]
		if !ok {
			table.mu.Unlock()
			http.Error(w, "no such round", http.StatusNotFound)
			return
		}

		action, recognized := engine.ParseAction(body.Action)
		if !recognized {
			view := viewOf(id, lr.round)
			table.mu.Unlock()
			writeJSON(w, map[string]any{"applied": false, "round": view})
			return
		}

		status := lr.round.Apply(action)
		lr.seq++
		seq := lr.seq
		view := viewOf(id, lr.round)
		done := status != engine.Continuing
		if done {
			delete(table.rounds, id)
		}
		table.mu.Unlock()

		if db != nil {
			ctx := req.Context()
			if err := db.RecordAction(ctx, id, seq, string(action), view.Status, view.Hand); err != nil {
				log.Printf("record action for %s: %v", id, err)
			}
			if done {
				if err := db.FinishRound(ctx, id, view.Status, view.Hand, len(view.Hand)); err != nil {
					log.Printf("finish round %s: %v", id, err)
				}
			}
		}
		writeJSON(w, map[string]any{"applied": true, "round": view})
	})

	// Stored round with its action log, for replaying finished rounds.
	r.Get("/api/rounds/{id}/history", func(w http.ResponseWriter, req *http.Request) {
		id, err := uuid.Parse(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, "bad round id", http.StatusBadRequest)
			return
		}
		if db == nil {
			http.Error(w, "no round store configured", http.StatusNotFound)
			return
		}
		summary, actions, err := db.GetRound(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if summary == nil {
			http.Error(w, "no such round", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"round": summary, "actions": actions})
	})

	// Recent finished rounds from the store.
	r.Get("/api/rounds", func(w http.ResponseWriter, req *http.Request) {
		if db == nil {
			writeJSON(w, map[string]any{"rows": []store.RoundSummary{}})
			return
		}
		rows, err := db.RecentRounds(req.Context(), 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
