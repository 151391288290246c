package database

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
)

// LoadEnv loads environment variables from the .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on process environment")
	}
}

// Client returns the shared MongoDB client, connecting on first use.
func Client() *mongo.Client {
	clientOnce.Do(func() {
		uri := os.Getenv("DB")
		if uri == "" {
			log.Fatal("DB is not set in the environment variables")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			log.Fatal(err)
		}

		if err := c.Ping(ctx, nil); err != nil {
			log.Fatal(err)
		}

		log.Println("Connected to MongoDB")
		client = c
	})
	return client
}

func databaseName() string {
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "BB_DATABASE"
	}
	return name
}

func OpenCollection(collectionName string) *mongo.Collection {
	return Client().Database(databaseName()).Collection(collectionName)
}

// WithTransaction runs fn inside a session transaction so multi-step
// writes (record payment + clear cart) commit or abort together.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return fn(sc)
	})
}
