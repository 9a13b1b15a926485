package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TimeRandom produces ids that sort roughly by creation time: a base-36
// millisecond timestamp followed by random hex.
type TimeRandom struct{}

func (TimeRandom) New() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + hex.EncodeToString(buf)
}
