package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/baarcakatalan/daily-tasks-bot/internal/bot"
	"github.com/baarcakatalan/daily-tasks-bot/internal/config"
	"github.com/baarcakatalan/daily-tasks-bot/internal/health"
	"github.com/baarcakatalan/daily-tasks-bot/internal/repository"
	"github.com/baarcakatalan/daily-tasks-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	docRepo := repository.NewDocumentRepository(db)

	taskSvc := service.NewTaskService(docRepo, time.Now)
	if err := taskSvc.Load(ctx); err != nil {
		log.Fatalf("load documents: %v", err)
	}
	statsSvc := service.NewStatsService()

	controller := bot.NewController(taskSvc, statsSvc, time.Now)
	telegramBot, err := bot.New(cfg.BotToken, controller)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	sweep := service.NewChecklistSweep(taskSvc, time.Now, telegramBot)
	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.ChecklistTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := sweep.Run(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("checklist sweep: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule checklist sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	health.Start(cfg.Port)

	log.Println("Daily tasks bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
