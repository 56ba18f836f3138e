// Package eventlog implements the GameLogger external interface
// spec.md §6 calls for: persisting the ordered GameEvent stream a
// match produces. Two encoders are provided, selected by the driver
// on the log file's extension — a JSON writer (default, human
// diffable) and a flatbuffers binary encoder for compact batch
// storage, grounded in cgo/bridge.go's manual flatbuffers.Builder
// usage for AggStats.
package eventlog

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huddlesim/gridiron/state"
)

// GameLogger receives a match's events as they're produced and is
// closed once the match ends.
type GameLogger interface {
	LogTurn(matchID string, turnNumber int, events []state.Event) error
	Close() error
}

// JSONEncoder writes one line of JSON per LogTurn call: a compact,
// append-only record a human (or jq) can read without a decoder.
type JSONEncoder struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSONEncoder wraps w as a GameLogger.
func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w, enc: json.NewEncoder(w)}
}

type turnRecord struct {
	MatchID    string       `json:"matchId"`
	TurnNumber int          `json:"turnNumber"`
	Events     []state.Event `json:"events"`
}

func (e *JSONEncoder) LogTurn(matchID string, turnNumber int, events []state.Event) error {
	return e.enc.Encode(turnRecord{MatchID: matchID, TurnNumber: turnNumber, Events: events})
}

func (e *JSONEncoder) Close() error {
	if closer, ok := e.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Open selects a GameLogger by path's file extension: ".fb"/".bin" get
// the flatbuffers BinaryEncoder, anything else (including no
// extension) falls back to the JSONEncoder.
func Open(path string) (GameLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "fb" || ext == "bin" {
		return NewBinaryEncoder(f), nil
	}
	return NewJSONEncoder(f), nil
}
