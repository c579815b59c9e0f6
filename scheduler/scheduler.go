// scheduler/scheduler.go
package scheduler

import (
	"log"
	"machineguard/connection"

	"github.com/robfig/cron/v3"
)

// StartScheduler runs the daily reminder sweep. It only writes notification
// rows; it never touches stored task statuses, those refresh lazily on read.
func StartScheduler() {
	c := cron.New(cron.WithSeconds())

	DB, err := connection.DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// every day at 06:00
	_, err = c.AddFunc("0 0 6 * * *", func() {
		log.Println("Running scheduled reminder job...")
		RemindDueTasksJob(DB)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started")
}
