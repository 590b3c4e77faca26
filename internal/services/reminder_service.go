package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/terraincognita07/lunacy/internal/models"
	"gorm.io/gorm"
)

// ReminderService sends optional Telegram reminders ahead of a forecast
// period and at the start of the fertile window. Disabled unless both
// TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are set.
type ReminderService struct {
	database           *gorm.DB
	botToken           string
	chatID             string
	enabled            bool
	periodReminderDays int
	fertilityReminder  bool
	location           *time.Location
	client             *http.Client

	mu       sync.Mutex
	sentDays map[string]string // reminder id -> ISO day it was last sent
}

func NewReminderService(database *gorm.DB, location *time.Location) *ReminderService {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	periodReminderDays := 2
	if raw := os.Getenv("TELEGRAM_PERIOD_REMINDER_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			periodReminderDays = parsed
		}
	}

	fertilityReminder := true
	if raw := os.Getenv("TELEGRAM_NOTIFY_FERTILITY"); raw != "" {
		fertilityReminder = raw == "1" || raw == "true" || raw == "TRUE"
	}

	if location == nil {
		location = time.Local
	}

	return &ReminderService{
		database:           database,
		botToken:           botToken,
		chatID:             chatID,
		enabled:            botToken != "" && chatID != "",
		periodReminderDays: periodReminderDays,
		fertilityReminder:  fertilityReminder,
		location:           location,
		client:             &http.Client{Timeout: 8 * time.Second},
		sentDays:           make(map[string]string),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.enabled {
		return
	}

	ticker := time.NewTicker(6 * time.Hour)
	go func() {
		defer ticker.Stop()

		service.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx)
			}
		}
	}()
}

func (service *ReminderService) run(ctx context.Context) {
	users := make([]models.User, 0)
	if err := service.database.WithContext(ctx).Find(&users).Error; err != nil {
		log.Printf("reminders: fetch users failed: %v", err)
		return
	}

	today := DateOnly(time.Now().In(service.location))

	for _, user := range users {
		bleedRows := make([]models.BleedDay, 0)
		if err := service.database.WithContext(ctx).
			Where("user_id = ?", user.ID).
			Order("date ASC").
			Find(&bleedRows).Error; err != nil {
			log.Printf("reminders: fetch bleed days failed for user %d: %v", user.ID, err)
			continue
		}
		noteRows := make([]models.Note, 0)
		if err := service.database.WithContext(ctx).
			Where("user_id = ?", user.ID).
			Find(&noteRows).Error; err != nil {
			log.Printf("reminders: fetch notes failed for user %d: %v", user.ID, err)
			continue
		}

		days := make([]time.Time, 0, len(bleedRows))
		for _, row := range bleedRows {
			days = append(days, row.Date)
		}

		settings := SettingsFromUser(&user)
		model := BuildCalendarModel(DerivePeriods(days), BuildNotesByDate(noteRows), settings, DefaultForecastCycles)
		if len(model.ForecastPeriods) == 0 {
			continue
		}

		nextPeriodStart := model.ForecastPeriods[0].Start
		daysUntilPeriod := DiffDays(today, nextPeriodStart)
		if daysUntilPeriod == service.periodReminderDays {
			service.sendOnce(ctx, fmt.Sprintf("period_%d", user.ID), today,
				fmt.Sprintf("Period expected around %s (in %d days).", ISODay(nextPeriodStart), daysUntilPeriod))
		}

		if service.fertilityReminder && len(model.FertileRanges) > 0 {
			fertile := model.FertileRanges[0]
			if SameCalendarDay(today, fertile.Start) {
				service.sendOnce(ctx, fmt.Sprintf("fertile_%d", user.ID), today,
					fmt.Sprintf("Fertile window starts today (until %s).", ISODay(fertile.End)))
			}
		}
	}
}

// sendOnce deduplicates per reminder id per calendar day.
func (service *ReminderService) sendOnce(ctx context.Context, id string, today time.Time, text string) {
	todayISO := ISODay(today)

	service.mu.Lock()
	if service.sentDays[id] == todayISO {
		service.mu.Unlock()
		return
	}
	service.sentDays[id] = todayISO
	service.mu.Unlock()

	if err := service.sendTelegramMessage(ctx, text); err != nil {
		log.Printf("reminders: send failed: %v", err)
	}
}

func (service *ReminderService) sendTelegramMessage(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", service.botToken)
	form := url.Values{}
	form.Set("chat_id", service.chatID)
	form.Set("text", text)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	request.URL.RawQuery = form.Encode()

	response, err := service.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("telegram responded %d: %s", response.StatusCode, string(body))
	}
	return nil
}
