// Package id issues run identifiers. A run ID is a ULID, so IDs sort
// lexicographically by start time and journal backends can use them as
// primary keys without a separate timestamp index.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newGenerator() *generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Monotonic entropy keeps IDs minted within one millisecond ordered.
	return &generator{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

func (g *generator) at(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy).String()
}

var runs = newGenerator()

// NewRun returns an identifier for a replay starting now.
func NewRun() string { return runs.at(time.Now()) }

// RunAt returns an identifier stamped with the given start time, for
// replays over historical data that should journal under their data date.
func RunAt(t time.Time) string { return runs.at(t) }

// StartTime recovers the timestamp a run ID was stamped with.
func StartTime(runID string) (time.Time, error) {
	u, err := ulid.ParseStrict(runID)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
