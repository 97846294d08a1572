package db

import (
	"context"
	"log"
	"time"

	"github.com/unklstewy/groundscope/pkg/config"
)

// ReconnectWithRetry attempts to reconnect to the database with exponential
// backoff, for resilience against temporary database outages.
//
// maxRetries of 0 retries forever.
func ReconnectWithRetry(cfg config.DatabaseConfig, maxRetries int, initialDelay time.Duration) (*DB, error) {
	delay := initialDelay
	attempt := 0

	for {
		attempt++

		log.Printf("Database connection attempt %d...", attempt)

		db, err := Connect(cfg)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := db.PingContext(ctx)
			cancel()
			if pingErr == nil {
				log.Println("Database reconnected successfully")
				return db, nil
			}
			db.Close()
			err = pingErr
		}

		if maxRetries > 0 && attempt >= maxRetries {
			log.Printf("Failed to reconnect after %d attempts", attempt)
			return nil, err
		}

		log.Printf("Connection failed: %v (retry in %v)", err, delay)
		time.Sleep(delay)

		// Exponential backoff with cap at 60 seconds
		delay *= 2
		if delay > 60*time.Second {
			delay = 60 * time.Second
		}
	}
}

// EnsureConnection checks that the connection is alive and reconnects if
// needed. Call before critical operations in long-running services.
func EnsureConnection(db *DB, cfg config.DatabaseConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err == nil {
		return db, nil
	}

	log.Println("Database connection lost, reconnecting...")
	db.Close()
	return ReconnectWithRetry(cfg, 5, time.Second)
}
