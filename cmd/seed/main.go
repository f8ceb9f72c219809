// Command seed loads a catalog fixture into MongoDB. It reads a JSON
// array of products from a file and inserts them in order, so the
// stored insertion order doubles as the storefront's "Featured"
// ordering. With -reset it drops existing products first, which makes
// the tool safe to re-run against a development database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rubenhtun/luxora-store/internal/product"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "./seed/products.json", "path to the product fixture")
	reset := flag.Bool("reset", false, "drop existing products before seeding")
	flag.Parse()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI not set in environment")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "luxora"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	collection := client.Database(dbName).Collection("products")

	if err := run(ctx, collection, *file, *reset); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, collection *mongo.Collection, file string, reset bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}

	var inputs []product.NewProduct
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("fixture %s contains no products", file)
	}

	if reset {
		result, err := collection.DeleteMany(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		fmt.Printf("Removed %d existing products\n", result.DeletedCount)
	}

	docs := make([]interface{}, 0, len(inputs))
	base := time.Now()
	for i, in := range inputs {
		docs = append(docs, product.Product{
			Name:          in.Name,
			Category:      in.Category,
			Price:         in.Price,
			OriginalPrice: in.OriginalPrice,
			Rating:        in.Rating,
			Reviews:       in.Reviews,
			InStock:       in.InStock,
			StockQuantity: in.StockQuantity,
			// Spread timestamps so insertion order survives in created_at.
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}

	// Ordered inserts keep the fixture's sequence.
	if _, err := collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}

	fmt.Printf("Seeded %d products into %s\n", len(docs), collection.Name())
	return nil
}
