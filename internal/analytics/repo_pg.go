package analytics

import (
	"context"
	"database/sql"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, event Event) error {
	const query = `
INSERT INTO analytics_events (id, user_id, event_type, framework_id, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, event.ID, event.UserID, string(event.Type), event.FrameworkID, event.CreatedAt)
	return err
}

func (r *PGRepo) Summary(ctx context.Context, since time.Time) (Summary, error) {
	const query = `
SELECT event_type, framework_id, count(*)
FROM analytics_events
WHERE created_at >= $1
GROUP BY event_type, framework_id`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	out := newSummary(since)
	for rows.Next() {
		var (
			eventType   string
			frameworkID string
			n           int
		)
		if err := rows.Scan(&eventType, &frameworkID, &n); err != nil {
			return Summary{}, err
		}
		out.add(EventType(eventType), frameworkID, n)
	}
	return out, rows.Err()
}
