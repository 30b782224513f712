package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"blackjack-table/server/engine"
	"blackjack-table/server/store"
)

//
// ===== pretty printing =====
//

var useColor bool

const (
	colReset  = "\033[0m"
	colBold   = "\033[1m"
	colDim    = "\033[2m"
	colGreen  = "\033[32m"
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colCyan   = "\033[36m"
)

func c(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colReset
}
func bold(s string) string { return c(colBold, s) }
func dim(s string) string  { return c(colDim, s) }
func good(s string) string { return c(colGreen, s) }
func warn(s string) string { return c(colYellow, s) }
func bad(s string) string  { return c(colRed, s) }
func cyan(s string) string { return c(colCyan, s) }

func section(title string) { fmt.Printf("\n%s %s %s\n", dim("──"), bold(title), dim("──")) }

//
// ===== bootstrap =====
//

func mustEnv(keys ...string) {
	for _, k := range keys {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing required env var %s. Put it in .env (dev) or set it on the host (prod).", k)
		}
	}
}
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// deckSeedFromEnv reads DECK_SEED for reproducible deals; 0 means time-seeded.
func deckSeedFromEnv() int64 {
	if s := os.Getenv("DECK_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	return 0
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	useColor = os.Getenv("NO_COLOR") == "" && strings.TrimSpace(os.Getenv("USE_COLOR")) != "0"

	var serve, migrate bool
	for _, a := range os.Args[1:] {
		switch a {
		case "--serve":
			serve = true
		case "--migrate":
			migrate = true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(cancel)

	if migrate {
		mustEnv("DATABASE_URL")
		db, err := store.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close(context.Background())
		if err := store.Migrate(ctx, db); err != nil {
			log.Fatal(err)
		}
		log.Println("migrated")
		return
	}

	// DB is optional for play; rounds are simply not recorded without it.
	var db *store.DB
	if dsn := getenv("DATABASE_URL", ""); dsn != "" {
		p, err := store.Open(dsn)
		if err != nil {
			log.Printf("DB disabled (open failed): %v", err)
		} else {
			db = p
			defer db.Close(context.Background())
			if asBool(os.Getenv("AUTO_MIGRATE")) {
				if err := store.Migrate(ctx, db); err != nil {
					log.Printf("migrate failed (continuing without DB): %v", err)
					db = nil
				}
			}
		}
	}

	seed := deckSeedFromEnv()

	if serve {
		port := getenv("PORT", "8080")
		srv := &http.Server{
			Addr:         ":" + port,
			Handler:      Router(db, seed),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		log.Printf("listening on http://localhost:%s (Ctrl+C to stop)", port)
		log.Fatal(srv.ListenAndServe())
	}

	playRound(ctx, db, seed)
}

func watchSignals(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	<-ch
	cancel()
}

//
// ===== console play =====
//

func playRound(ctx context.Context, db *store.DB, seed int64) {
	section("BLACKJACK")
	fmt.Println("Commands:", cyan("hit"), "/", cyan("stand"), "/", cyan("double-down"), "/", cyan("split"), "/", cyan("surrender"))

	id := uuid.New()
	round := engine.Start(engine.NewShuffledDeck(seed))
	if db != nil {
		if err := db.InsertRound(ctx, id); err != nil {
			log.Printf("insert round %s: %v", id, err)
		}
	}

	in := bufio.NewScanner(os.Stdin)
	seq := 0
	for round.Status() == engine.Continuing {
		select {
		case <-ctx.Done():
			fmt.Println(warn("\nInterrupted."))
			return
		default:
		}

		showHand(round)
		fmt.Print(bold("> "))
		if !in.Scan() {
			// stdin closed; leave the round where it stands
			fmt.Println()
			return
		}
		action, ok := engine.ParseAction(in.Text())
		if !ok {
			fmt.Println(warn("Unknown command."))
			continue
		}

		status := round.Apply(action)
		seq++
		if db != nil {
			hand := handStrings(round.Hand())
			if err := db.RecordAction(ctx, id, seq, string(action), string(status), hand); err != nil {
				log.Printf("record action for %s: %v", id, err)
			}
		}
	}

	showHand(round)
	switch round.Status() {
	case engine.Won:
		fmt.Println(good("You won!"))
	case engine.Lost:
		fmt.Println(bad("You lost."))
	}
	if db != nil {
		hand := handStrings(round.Hand())
		if err := db.FinishRound(ctx, id, string(round.Status()), hand, len(hand)); err != nil {
			log.Printf("finish round %s: %v", id, err)
		}
	}
}

func showHand(r *engine.Round) {
	hand := r.Hand()
	if len(hand) == 0 {
		fmt.Printf("%s %s\n", bold("Hand:"), dim("(empty)"))
	} else {
		fmt.Printf("%s %s\n", bold("Hand:"), strings.Join(handStrings(hand), " "))
	}
	totals := r.Totals()
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = strconv.Itoa(t)
	}
	fmt.Printf("%s %s  %s\n", bold("Totals:"), strings.Join(parts, " "), dim(fmt.Sprintf("(%d cards left)", r.CardsRemaining())))
}
