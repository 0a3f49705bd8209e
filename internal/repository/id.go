package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an identifier unique within a process run: the current
// unix-millisecond timestamp plus a short random suffix.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
