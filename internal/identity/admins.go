// Package identity tells administrators apart from regular users.
package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// Admins is resolved once at startup and read-only afterwards.
type Admins struct {
	ids map[int64]struct{}
}

func NewAdmins(ids []int64) *Admins {
	a := &Admins{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		a.ids[id] = struct{}{}
	}
	return a
}

func (a *Admins) IsAdmin(userID int64) bool {
	_, ok := a.ids[userID]
	return ok
}

// ParseIDs reads a comma separated list of Telegram user ids.
func ParseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
