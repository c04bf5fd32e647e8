package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/espbot/internal/bot"
	"github.com/example/espbot/internal/catalog"
	"github.com/example/espbot/internal/database"
	"github.com/example/espbot/internal/excel"
	"github.com/example/espbot/internal/notifier"
	"github.com/example/espbot/internal/progress"
	"github.com/example/espbot/internal/srs"
	"github.com/joho/godotenv"
)

func main() {
	// Создаем канал для сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Создаем контекст с отменой
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Подключаемся к базе данных
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	now := time.Now()
	cat := catalog.New(now)
	if path := os.Getenv("IMPORT_FILE"); path != "" {
		if err := importCards(cat, path, now); err != nil {
			log.Printf("Failed to import cards from %s: %v", path, err)
		}
	}
	log.Printf("Catalog loaded: %d cards in %d categories", cat.Len(), len(cat.Categories()))

	reviewer := srs.New()
	popups := notifier.New()
	defer popups.Stop()

	store := progress.NewStore(cat, popups.Show)

	b, err := bot.New(cat, reviewer, store, popups)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Канал для ожидания завершения бота
	done := make(chan struct{})

	// Горутина для обработки сигналов
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		cancel()

		// Даем время на graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}

		close(done)
	}()

	// Запускаем бота
	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}

// importCards merges supplemental flashcards from an Excel or CSV file into
// the catalog at startup
func importCards(cat *catalog.Catalog, path string, now time.Time) error {
	result, err := excel.ImportCards(excel.DefaultImportConfig(path))
	if err != nil {
		return err
	}
	nextID := cat.NextID()
	for i := range result.Cards {
		result.Cards[i].ID = nextID + i
	}
	if err := cat.Merge(result.Cards, now); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		log.Printf("Import finished with %d problem rows, first: %s", len(result.Errors), result.Errors[0])
	}
	log.Printf("Imported %d cards from %s (%d rows, %d skipped)", len(result.Cards), path, result.TotalProcessed, result.Skipped)
	return nil
}
