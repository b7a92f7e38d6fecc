package host

import (
	"context"
	"github.com/datastax/page-data-blocks/log"
	"golang.org/x/sync/errgroup"
	"sync"
)

// Snapshot maps table names to the records read from them.
type Snapshot map[string][]Record

// LoadRecords reads the records of the named tables concurrently. Unknown tables are skipped and
// tables that fail to load are logged and stored without records so that rendering can fall
// back to its empty placeholders.
func LoadRecords(ctx context.Context, base Base, logger log.Logger, tableNames ...string) (Snapshot, error) {
	var mutex sync.Mutex
	snapshot := make(Snapshot, len(tableNames))
	group, groupCtx := errgroup.WithContext(ctx)

	seen := make(map[string]bool, len(tableNames))
	for _, name := range tableNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		table := base.TableByName(name)
		if table == nil {
			continue
		}

		group.Go(func() error {
			records, err := table.Records(groupCtx)
			if err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("unable to load table records", "table", name, "error", err)
				records = nil
			}
			mutex.Lock()
			snapshot[name] = records
			mutex.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
