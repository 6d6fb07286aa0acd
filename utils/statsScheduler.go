package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/services/quiz"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[QUIZ-STATS %s] %s", time.Now().Format(time.RFC3339), message)
}

// refreshQuizStats recomputes attempt counts and average scores for all
// quizzes. Grading never reads these; they feed dashboards only.
func refreshQuizStats() {
	svc := quiz.NewService(database.Database.Db)
	if err := svc.RefreshStats(); err != nil {
		logScheduler("Error refreshing quiz stats: " + err.Error())
		return
	}
	logScheduler("Quiz stats refreshed")
}

// StartStatsScheduler runs the quiz stats refresher on the configured
// cron schedule.
func StartStatsScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.StatsSchedule, refreshQuizStats); err != nil {
		log.Fatalf("Failed to schedule quiz stats refresh: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started with schedule " + config.AppConfig.StatsSchedule)
	return c
}
