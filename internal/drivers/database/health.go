package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// Health checks the health of the database connection.
// It returns a map with keys indicating various health statistics.
func (s *service) Health(ctx context.Context) map[string]any {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]any)

	// Ping the database
	if err := s.db.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"

	// Connection pool snapshot
	dbStats := s.db.Stat()
	stats["max_connections"] = dbStats.MaxConns()
	stats["open_connections"] = dbStats.TotalConns()
	stats["in_use"] = dbStats.AcquiredConns()
	stats["idle"] = dbStats.IdleConns()
	stats["waited_acquired"] = dbStats.EmptyAcquireCount()

	// Number of stored submissions, cheap enough for a small table
	var count int64
	if err := s.db.QueryRow(ctx, countSubmissionsQuery).Scan(&count); err == nil {
		stats["submissions"] = count
	}

	var messages []string
	if dbStats.MaxConns() > 0 {
		utilization := float64(dbStats.AcquiredConns()) / float64(dbStats.MaxConns())
		stats["utilization"] = fmt.Sprintf("%.2f", utilization*100)

		if utilization > 0.85 {
			messages = append(messages, fmt.Sprintf("Pool highly utilized: %.2f%%", utilization*100))
		}

		if dbStats.TotalConns() >= dbStats.MaxConns() {
			messages = append(messages, "Pool at max capacity")
		}
	}

	if len(messages) > 0 {
		stats["message"] = strings.Join(messages, "; ")
	}

	return stats
}

const countSubmissionsQuery = "SELECT COUNT(*) FROM submission"
