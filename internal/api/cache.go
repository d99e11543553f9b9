package api

import (
	"context"
	"strconv"

	"donation_system/internal/utils" // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for ledger-wide reads.
const fundSummaryCacheKey = "funds:summary"

func impactCacheKey(accountID uint) string {
	return "impact:account:" + strconv.Itoa(int(accountID))
}

func donationPagesPrefix(accountID uint) string {
	return "donations:account:" + strconv.Itoa(int(accountID))
}

// invalidateLedgerCaches drops the read caches a ledger write makes stale:
// the fund summary, and when an account is involved, its impact summary and
// donation history pages (first 5 pages, default size).
//
// Admin listing keys (admin:accounts:*, admin:donations:*) embed arbitrary
// filter and paging combinations that cannot be enumerated here; those
// entries are left to expire with their 60s TTL.
func invalidateLedgerCaches(ctx context.Context, rdb *redis.Client, accountID uint) {
	_ = utils.DeleteCache(ctx, rdb, fundSummaryCacheKey)
	if accountID == 0 {
		return
	}
	_ = utils.DeleteCache(ctx, rdb, impactCacheKey(accountID))
	prefix := donationPagesPrefix(accountID)
	for i := 1; i <= 5; i++ {
		_ = utils.DeleteCache(ctx, rdb, prefix+":page:"+strconv.Itoa(i)+":size:20")
	}
}
