package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gatehouse.dev/internal/migrations"
	"gatehouse.dev/internal/store/pg"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("GATEHOUSE_PG_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("dsn is required (-dsn flag or GATEHOUSE_PG_DSN)")
	}

	store, err := pg.Open(*dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrations.Up(ctx, store.DB()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations applied")
}
