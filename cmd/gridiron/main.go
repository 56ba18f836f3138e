// Package main provides the gridiron CLI: the headless driver that
// runs one or more matches between two Coach implementations and
// prints a summary. Flag handling follows cmd/evolve's stdlib flag
// convention; .env overrides are layered in via godotenv the way
// fight-club-go's cmd/server does, with flags always winning.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/huddlesim/gridiron/coach"
	"github.com/huddlesim/gridiron/driver"
	"github.com/huddlesim/gridiron/eventlog"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	homeAI   string
	awayAI   string
	matches  int
	weights  string
	epsilon  float64
	logPath  string
	homeRace string
	awayRace string
	seed     int64
	verbose  bool
)

func init() {
	flag.StringVar(&homeAI, "home-ai", "greedy", "Home coach: random, greedy, weighted, or mcts")
	flag.StringVar(&awayAI, "away-ai", "greedy", "Away coach: random, greedy, weighted, or mcts")
	flag.IntVar(&matches, "matches", 1, "Number of matches to play")
	flag.StringVar(&weights, "weights", "", "Weights file for -home-ai/-away-ai=weighted (defaults to DefaultWeights if empty)")
	flag.Float64Var(&epsilon, "epsilon", 0.1, "Exploration probability for weighted coaches")
	flag.StringVar(&logPath, "log", "", "Event log file (.json/.jsonl for line-delimited JSON, .fb/.bin for flatbuffers); empty disables logging")
	flag.StringVar(&homeRace, "home-race", "human", "Home roster race (human, orc, skaven, or any other name for a default roster)")
	flag.StringVar(&awayRace, "away-race", "human", "Away roster race")
	flag.Int64Var(&seed, "seed", 0, "Base random seed (0 = derived from current time); match N uses seed+N")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug-level logging")
}

// summary is the CLI's final stdout report, one aggregate across every
// match played this run.
type summary struct {
	Matches []driver.MatchResult `json:"matches"`
	Wins    map[string]int       `json:"wins"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using flags and environment only")
	}
	applyEnvDefaults()
	flag.Parse()

	zlog := newLogger(verbose)
	defer zlog.Sync() //nolint:errcheck
	sugar := zlog.Sugar()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, err := loadWeights(weights)
	if err != nil {
		sugar.Fatalw("failed to load weights", "path", weights, "error", err)
	}

	results := make([]driver.MatchResult, 0, matches)
	wins := map[string]int{"home": 0, "away": 0, "draw": 0}

	for i := 0; i < matches; i++ {
		matchSeed := seed + int64(i)

		var logger eventlog.GameLogger
		if logPath != "" {
			matchLogPath := logPath
			if matches > 1 {
				matchLogPath = fmt.Sprintf("%s.%d", logPath, i)
			}
			logger, err = eventlog.Open(matchLogPath)
			if err != nil {
				sugar.Fatalw("failed to open event log", "path", matchLogPath, "error", err)
			}
		}

		cfg := driver.Config{
			HomeCoach: buildCoach(homeAI, matchSeed, epsilon, w),
			AwayCoach: buildCoach(awayAI, matchSeed+1, epsilon, w),
			HomeRace:  homeRace,
			AwayRace:  awayRace,
			Seed:      matchSeed,
			MatchID:   fmt.Sprintf("match-%d", i),
			Logger:    logger,
			Zap:       sugar,
		}

		result := driver.RunMatch(cfg)
		results = append(results, result)
		wins[result.Outcome]++
		sugar.Infow("match complete", "matchId", cfg.MatchID, "home", result.HomeScore, "away", result.AwayScore, "outcome", result.Outcome)
	}

	out := summary{Matches: results, Wins: wins}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		sugar.Fatalw("failed to encode summary", "error", err)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zlog, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return zlog
}

func loadWeights(path string) (coach.Weights, error) {
	if path == "" {
		return coach.DefaultWeights(), nil
	}
	return coach.LoadWeights(path)
}

func buildCoach(kind string, seed int64, epsilon float64, w coach.Weights) coach.Coach {
	switch kind {
	case "random":
		return coach.NewRandom(seed)
	case "weighted":
		return coach.NewWeighted(seed, epsilon, w)
	case "mcts":
		return coach.NewMCTS(seed, 200)
	default:
		return coach.Greedy{}
	}
}

// applyEnvDefaults overrides flag defaults from GRIDIRON_* environment
// variables before flag.Parse runs, so flags set on the command line
// still take precedence over both the environment and these defaults.
func applyEnvDefaults() {
	if v := os.Getenv("GRIDIRON_HOME_AI"); v != "" {
		homeAI = v
	}
	if v := os.Getenv("GRIDIRON_AWAY_AI"); v != "" {
		awayAI = v
	}
	if v := os.Getenv("GRIDIRON_MATCHES"); v != "" {
		if n, err := fmt.Sscanf(v, "%d", &matches); err != nil || n != 1 {
			matches = 1
		}
	}
	if v := os.Getenv("GRIDIRON_WEIGHTS"); v != "" {
		weights = v
	}
	if v := os.Getenv("GRIDIRON_LOG"); v != "" {
		logPath = v
	}
	if v := os.Getenv("GRIDIRON_SEED"); v != "" {
		var s int64
		if n, err := fmt.Sscanf(v, "%d", &s); err == nil && n == 1 {
			seed = s
		}
	}
	if v := os.Getenv("GRIDIRON_VERBOSE"); v == "true" || v == "1" {
		verbose = true
	}
}
