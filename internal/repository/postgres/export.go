package postgres

import (
	"context"
	"fmt"
)

// Tables eligible for CSV export. Keyed by the public entity name to keep the
// table identifier out of caller hands.
var exportableTables = map[string]string{
	"accounts":   "accounts",
	"deals":      "deals",
	"events":     "events",
	"activities": "activities",
}

func (r *exportRepository) ListRows(ctx context.Context, table string) ([]map[string]interface{}, error) {
	name, ok := exportableTables[table]
	if !ok {
		return nil, fmt.Errorf("unknown export entity: %s", table)
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT * FROM `+name+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", name, err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate export rows: %w", err)
	}
	return result, nil
}
