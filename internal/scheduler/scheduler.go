package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/espbot/internal/catalog"
	"github.com/example/espbot/internal/srs"
	"github.com/go-co-op/gocron"
)

// Константы для настроек уведомлений по умолчанию
const (
	DefaultNotificationStartHour = 8  // Время начала уведомлений (8:00)
	DefaultNotificationEndHour   = 22 // Время окончания уведомлений (22:00)
)

// Notifier interface for sending review reminders
type Notifier interface {
	SendReminder(dueCount int) error
}

// Scheduler runs the hourly due-card reminder job
type Scheduler struct {
	scheduler *gocron.Scheduler
	catalog   *catalog.Catalog
	srs       *srs.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(cat *catalog.Catalog, reviewer *srs.Scheduler, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		catalog:   cat,
		srs:       reviewer,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Schedule hourly check for due cards
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends a reminder when cards are due, inside the
// configured notification window
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := DefaultNotificationStartHour
	endHour := DefaultNotificationEndHour

	// Проверяем, задано ли время в переменных окружения
	if startHourStr := os.Getenv("NOTIFICATION_START_HOUR"); startHourStr != "" {
		if h, err := strconv.Atoi(startHourStr); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if endHourStr := os.Getenv("NOTIFICATION_END_HOUR"); endHourStr != "" {
		if h, err := strconv.Atoi(endHourStr); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error sending review reminder: %v", err)
	}
}

// RunManualCheck forces a due-card check right now
func (s *Scheduler) RunManualCheck() error {
	due := s.srs.DueFirst(s.catalog.All(), time.Now(), 0)
	if len(due) == 0 {
		return nil
	}
	return s.notifier.SendReminder(len(due))
}
