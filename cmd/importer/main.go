package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storelib/internal/config"
	"storelib/internal/db"
	"storelib/internal/importer"
	"storelib/internal/repository/author"
	"storelib/internal/repository/book"
	"storelib/internal/repository/product"
	"storelib/internal/repository/publisher"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a products or books CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, importer.Stores{
		Products:   product.NewPostgres(pool, logger),
		Authors:    author.NewPostgres(pool),
		Publishers: publisher.NewPostgres(pool),
		Books:      book.NewPostgres(pool, logger),
	})

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d rows: %v", count, err)
	}

	fmt.Printf("Imported %d %s in %s\n", count, imp.Kind(), time.Since(start).Truncate(time.Millisecond))
}
