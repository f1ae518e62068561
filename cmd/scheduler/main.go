package main

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/safar/go-crm-backend/internal/config"
	"github.com/safar/go-crm-backend/internal/jobs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	runner := jobs.NewRunner(cfg.Jobs)

	c := cron.New()

	schedules := []struct {
		spec string
		name string
		run  func()
	}{
		{"*/5 * * * *", "heartbeat", runner.RunHeartbeat},
		{"0 */12 * * *", "low-stock restock", runner.RunRestock},
		{"0 8 * * *", "order reminders", runner.RunOrderReminders},
		{"0 6 * * 1", "weekly report", runner.RunWeeklyReport},
	}

	for _, job := range schedules {
		if _, err := c.AddFunc(job.spec, job.run); err != nil {
			log.Fatalf("Schedule %s job: %v", job.name, err)
		}
		log.Printf("Scheduled %s job (%s)", job.name, job.spec)
	}

	c.Start()
	log.Printf("Scheduler started")

	select {}
}
