package catalog

import (
	"context"
	"time"
)

// Stats summarizes catalog contents for the health and stats endpoints.
type Stats struct {
	Libraries     int `json:"libraries"`
	Assets        int `json:"assets"`
	OfflineAssets int `json:"offlineAssets"`
}

// GetStats returns record counts across the catalog.
func (c *Catalog) GetStats(ctx context.Context) (Stats, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_stats", start, err) }()

	var stats Stats
	row := c.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM libraries),
			(SELECT COUNT(*) FROM assets),
			(SELECT COUNT(*) FROM assets WHERE is_offline = 1)`)
	if err = row.Scan(&stats.Libraries, &stats.Assets, &stats.OfflineAssets); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Ping verifies the database connection is alive.
func (c *Catalog) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return c.db.PingContext(pingCtx)
}
