package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectKey builds a bucket key for a generated poster. The
// second-resolution timestamp plus ten hex characters of randomness
// makes collisions between concurrent writes unlikely, not impossible;
// nothing detects or retries one.
func ObjectKey(prefix string, now time.Time) string {
	ts := now.UTC().Format("20060102150405")
	rid := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return prefix + "poster_" + ts + "_" + rid + ".png"
}
