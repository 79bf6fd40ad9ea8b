package orders

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nowUnix = func() int64 { return time.Now().Unix() }

// NewOrderID produces a human-readable order identifier, e.g.
// "VS-LYX2K3-7G4QZ9": a base36 timestamp for rough ordering plus a random
// tail. Uniqueness is assumed, not verified.
func NewOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(nowUnix(), 36))
	tail := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "VS-" + ts + "-" + tail
}
