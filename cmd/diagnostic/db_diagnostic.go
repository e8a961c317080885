// File: cmd/diagnostic/db_diagnostic.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/chat-api/internal/config"
	"github.com/iyunix/chat-api/internal/database"
	"github.com/iyunix/chat-api/internal/logger"
	"github.com/iyunix/chat-api/internal/repository"
	"github.com/iyunix/chat-api/internal/services"
	chatservice "github.com/iyunix/chat-api/internal/services/chat"
)

func main() {
	rounds := flag.Int("rounds", 20, "number of create/get/delete round trips")
	messages := flag.Int("messages", 5, "messages posted per chat")
	flag.Parse()

	fmt.Println("🚀 Testing database round trips...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config: %v", err)
	}
	fmt.Printf("✅ Database: %s (%s)\n", cfg.RedactedDatabaseURL(), database.DialectOf(cfg.Database.URL))

	ctx := context.Background()
	appLog := logger.New("chat-api-diagnostic", "WARN", "text", os.Stderr)

	db, err := database.Open(ctx, cfg.Database, appLog, gormlogger.Silent)
	if err != nil {
		log.Fatalf("❌ Connect failed: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	svc, err := services.NewChatService(repository.NewUnitOfWork(db), chatservice.DefaultConfig(), appLog)
	if err != nil {
		log.Fatalf("❌ Service: %v", err)
	}

	repos := repository.NewRepositories(db)
	chatsBefore, messagesBefore := countRows(ctx, repos)
	fmt.Printf("✅ Before: %d chats, %d messages\n", chatsBefore, messagesBefore)

	var total time.Duration
	for i := 0; i < *rounds; i++ {
		start := time.Now()

		chat, err := svc.CreateChat(ctx, fmt.Sprintf("diagnostic %d", i))
		if err != nil {
			log.Fatalf("❌ Create chat failed: %v", err)
		}
		for j := 0; j < *messages; j++ {
			if _, err := svc.CreateMessage(ctx, chat.ID, fmt.Sprintf("message %d", j)); err != nil {
				log.Fatalf("❌ Create message failed: %v", err)
			}
		}
		got, err := svc.GetChatWithMessages(ctx, chat.ID, chatservice.Page{Limit: 100})
		if err != nil {
			log.Fatalf("❌ Get chat failed: %v", err)
		}
		if want := min(*messages, 100); len(got.Messages) != want {
			log.Fatalf("❌ Expected %d messages, got %d", want, len(got.Messages))
		}
		if _, err := svc.DeleteChat(ctx, chat.ID); err != nil {
			log.Fatalf("❌ Delete chat failed: %v", err)
		}
		left, err := repos.Messages.CountByChatID(ctx, chat.ID)
		if err != nil {
			log.Fatalf("❌ Count messages failed: %v", err)
		}
		if left != 0 {
			log.Fatalf("❌ Cascade delete left %d messages in chat %d", left, chat.ID)
		}

		total += time.Since(start)
	}

	if *rounds > 0 {
		fmt.Printf("✅ %d round trips, average %v\n", *rounds, total/time.Duration(*rounds))
	}

	chatsAfter, messagesAfter := countRows(ctx, repos)
	fmt.Printf("✅ After: %d chats, %d messages\n", chatsAfter, messagesAfter)
	if chatsAfter != chatsBefore || messagesAfter != messagesBefore {
		fmt.Println("⚠️  Row counts changed; other writers may be using this database")
	}
}

func countRows(ctx context.Context, repos repository.Repositories) (int64, int64) {
	chats, err := repos.Chats.CountTotalChats(ctx)
	if err != nil {
		log.Fatalf("❌ Count chats failed: %v", err)
	}
	messages, err := repos.Messages.CountTotalMessages(ctx)
	if err != nil {
		log.Fatalf("❌ Count messages failed: %v", err)
	}
	return chats, messages
}
