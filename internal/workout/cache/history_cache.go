package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/workout"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

// HistoryCache holds the full history list of an exercise, keyed by its
// name. Entries never expire by time, they are only ever invalidated.
type HistoryCache struct {
	cache *freecache.Cache
}

func NewHistoryCache(sizeMB int) *HistoryCache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &HistoryCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *HistoryCache) Get(exerciseName string) ([]workout.History, bool) {
	data, err := c.cache.Get([]byte(exerciseName))
	if err != nil {
		return nil, false
	}

	var histories []workout.History
	if err := json.Unmarshal(data, &histories); err != nil {
		// unreadable entry, treat as a miss and drop it
		c.cache.Del([]byte(exerciseName))
		return nil, false
	}
	return histories, true
}

// Put stores the histories. A list too large for a single cache entry is
// not stored, which is reported as an error but leaves the cache consistent.
func (c *HistoryCache) Put(exerciseName string, histories []workout.History) error {
	if histories == nil {
		histories = []workout.History{}
	}
	data, err := json.Marshal(histories)
	if err != nil {
		return fmt.Errorf("marshal histories: %w", err)
	}
	if err := c.cache.Set([]byte(exerciseName), data, 0); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			c.cache.Del([]byte(exerciseName))
		}
		return fmt.Errorf("cache set [%s]: %w", exerciseName, err)
	}
	return nil
}

func (c *HistoryCache) Invalidate(exerciseName string) {
	c.cache.Del([]byte(exerciseName))
}

func (c *HistoryCache) Clear() {
	c.cache.Clear()
}

func (c *HistoryCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
