package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/models"
	mongorepo "github.com/delizza/mailing-backend/internal/repositories/mongodb"
	"github.com/delizza/mailing-backend/pkg/mongodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Imports subscribers from a CSV file with columns: email,name,tags
// (tags separated by ';'). Every imported subscriber starts active with
// consent and gets a fresh unsubscribe token.
func main() {
	file := flag.String("file", "subscribers.csv", "path to the CSV file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	subscriberRepo := mongorepo.NewSubscriberRepository(db)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	imported, skipped := 0, 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV line %d: %v", line, err)
		}
		if line == 1 && strings.EqualFold(record[0], "email") {
			// Header row
			continue
		}

		email := strings.TrimSpace(record[0])
		if email == "" {
			skipped++
			continue
		}
		if _, err := subscriberRepo.FindByEmail(ctx, email); err == nil {
			log.Printf("line %d: %s already exists, skipping", line, email)
			skipped++
			continue
		}

		subscriber := &models.Subscriber{
			Email:            email,
			Status:           models.SubscriberStatusActive,
			Consent:          true,
			UnsubscribeToken: uuid.NewString(),
		}
		if len(record) > 1 {
			subscriber.Name = strings.TrimSpace(record[1])
		}
		if len(record) > 2 && record[2] != "" {
			subscriber.Tags = strings.Split(record[2], ";")
		}

		if err := subscriberRepo.Create(ctx, subscriber); err != nil {
			log.Printf("line %d: failed to import %s: %v", line, email, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Import finished: %d imported, %d skipped", imported, skipped)
}
