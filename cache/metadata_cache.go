package cache

import (
	"sync"
	"time"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

const MetadataTTL = 5 * time.Minute

// ── Storefront filter metadata ───────────────────────────────────────────────
// Availability counts, category counts and the price range all come from the
// products table and change only when products do.

type metadataEntry struct {
	data      models.FilterMetadata
	fetchedAt time.Time
}

var (
	metaMu    sync.RWMutex
	metaCache *metadataEntry
)

func GetFilterMetadata() (models.FilterMetadata, bool) {
	metaMu.RLock()
	defer metaMu.RUnlock()
	if metaCache != nil && time.Since(metaCache.fetchedAt) < MetadataTTL {
		return metaCache.data, true
	}
	return models.FilterMetadata{}, false
}

func SetFilterMetadata(data models.FilterMetadata) {
	metaMu.Lock()
	defer metaMu.Unlock()
	metaCache = &metadataEntry{data: data, fetchedAt: time.Now()}
}

// Invalidate drops the cached metadata. Call after seeding or product writes.
func Invalidate() {
	metaMu.Lock()
	metaCache = nil
	metaMu.Unlock()
}
