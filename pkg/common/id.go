// Package common provides small shared helpers.
package common

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const idSuffixLen = 9

var (
	idMu  sync.Mutex
	idRnd = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateID returns a unique string id: millisecond timestamp prefix plus a
// random base36 suffix. Not cryptographically unique, but collision odds are
// negligible for a single-user session.
func GenerateID() string {
	idMu.Lock()
	n := idRnd.Int63()
	idMu.Unlock()

	suffix := strconv.FormatInt(n, 36)
	if len(suffix) > idSuffixLen {
		suffix = suffix[:idSuffixLen]
	}
	for len(suffix) < idSuffixLen {
		suffix = "0" + suffix
	}

	var b strings.Builder
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('-')
	b.WriteString(suffix)
	return b.String()
}
