package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	TontineKeyPrefix = "tontine:%d"
)

const (
	UserTTL    = 5 * time.Minute
	TontineTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TontineKey(tontineID uint) string {
	return fmt.Sprintf(TontineKeyPrefix, tontineID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateTontine drops the cached detail for a tontine. Called
// after a successful join so readers see the new occupancy; the
// schedule is derived from the detail, so it needs no key of its own.
func InvalidateTontine(ctx context.Context, tontineID uint) {
	Invalidate(ctx, TontineKey(tontineID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
