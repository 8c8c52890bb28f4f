// File: editor/id.go
package editor

import (
	"strconv"
	"sync"
	"time"
)

var (
	idMu     sync.Mutex
	lastID   int64
	nowMilli = func() int64 { return time.Now().UnixMilli() }
)

// NewID returns a timestamp-derived record id, unique within the process
// even when two adds land on the same millisecond. Ids address records
// locally only; they are not globally unique.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	id := nowMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}
