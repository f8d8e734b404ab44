// Package background contains services that run independently of the HTTP
// request-response cycle. The activity recorder consumes the domain event
// bus and persists an append-only activity log of post and comment
// mutations, so the write happens off the request path and a slow insert
// never delays a response.
package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogger-go/events"
)

const (
	// numRecorderWorkers is the number of concurrent workers writing activity rows.
	numRecorderWorkers = 3
	// insertTimeout bounds each activity insert so a wedged database cannot
	// pin a worker forever.
	insertTimeout = 5 * time.Second
)

// StartActivityRecorder subscribes to the event bus and starts a small pool
// of workers that persist each event into the post_activity table. Closing
// stopChan shuts the service down gracefully: the subscription is dropped,
// in-flight inserts finish, and all goroutines exit.
func StartActivityRecorder(dbPool *pgxpool.Pool, bus events.Bus, stopChan <-chan struct{}) {
	log.Println("Background activity recorder starting...")

	eventsChan, unsubscribe := bus.Subscribe()

	var workersWg sync.WaitGroup

	// Worker pool: each worker drains the subscription channel until it is
	// closed by unsubscribe during shutdown.
	for i := 1; i <= numRecorderWorkers; i++ {
		workersWg.Add(1)
		go func(workerID int) {
			defer workersWg.Done()
			for e := range eventsChan {
				if err := recordActivity(dbPool, e); err != nil {
					log.Printf("activity recorder worker %d: failed to record %s event %s: %v", workerID, e.Type, e.ID, err)
				}
			}
		}(i)
	}

	// Orchestrator: waits for the stop signal, tears down the subscription
	// (which closes eventsChan and lets the workers drain out), then waits
	// for the pool to finish.
	go func() {
		<-stopChan
		log.Println("Activity recorder received stop signal, shutting down workers...")
		unsubscribe()
		workersWg.Wait()
		log.Println("Activity recorder stopped.")
	}()
}

// recordActivity writes one event to the activity log. The event_id unique
// constraint makes the insert idempotent should an event ever be delivered
// twice.
func recordActivity(dbPool *pgxpool.Pool, e events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	query := `INSERT INTO post_activity (event_id, event_type, post_id, actor_id, occurred_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (event_id) DO NOTHING`
	_, err := dbPool.Exec(ctx, query, e.ID, string(e.Type), e.PostID, e.ActorID, e.OccurredAt)
	return err
}
