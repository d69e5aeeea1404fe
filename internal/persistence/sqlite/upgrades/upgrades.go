package upgrades

import (
	"github.com/WatchBeam/clock"

	"github.com/example/assetdb/internal/persistence/sqlite/migration"
)

// All returns the full upgrade chain in ascending order. The clock stamps
// cache entries written by data migrations.
func All(clk clock.Clock) []migration.Step {
	return []migration.Step{
		{
			From: 0,
			To:   1,
			Name: "create_asset_tables",
			Up:   createAssetTables,
		},
		{
			From: 1,
			To:   2,
			Name: "create_general_cache",
			Up:   createGeneralCache,
		},
		{
			From: 2,
			To:   3,
			Name: "fix_spam_false_positives",
			Up:   fixSpamFalsePositives(clk),
		},
	}
}
