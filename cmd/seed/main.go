package main

import (
	"context"
	"flag"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/seed"
)

func main() {
	xlsxPath := flag.String("xlsx", "", "import flights and hotels from the Flights and Hotels sheets of this workbook")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	catalog := seed.DefaultCatalog(time.Now().UTC().Truncate(time.Second))
	if *xlsxPath != "" {
		flights, hotels, err := seed.ReadWorkbookFile(*xlsxPath)
		if err != nil {
			log.Fatalf("workbook: %v", err)
		}
		log.Printf("read %d flights and %d hotels from %s", len(flights), len(hotels), *xlsxPath)
		catalog.Flights, catalog.Hotels = flights, hotels
	}

	sum, err := seed.Run(ctx, repository.NewStore(pool, cfg.Database.QueryTimeout), catalog, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("Data added successfully: %s", sum)
}
