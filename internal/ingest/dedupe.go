package ingest

import (
	"hustlewire/internal/types"
	"hustlewire/internal/utils"
)

// FilterNew returns the candidates whose url is not already persisted,
// preserving their relative order. It does not deduplicate within the
// batch itself; a url appearing twice in one batch passes twice and the
// store's uniqueness constraint resolves the collision at insert time.
func FilterNew(candidates []types.Item, existing map[string]struct{}) []types.Item {
	return utils.FilterArray(candidates, func(item types.Item) bool {
		_, seen := existing[item.URL]
		return !seen
	})
}
