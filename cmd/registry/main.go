package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avtostart/avtostart-backend/internal/database"
	"github.com/avtostart/avtostart-backend/internal/documents/handler"
	"github.com/avtostart/avtostart-backend/internal/documents/service"
	"github.com/avtostart/avtostart-backend/internal/gate"
)

// Standalone document-registry service: just the /api/documents endpoints,
// with an in-memory fallback when MongoDB is not configured.
func main() {
	port := os.Getenv("REGISTRY_PORT")
	if port == "" {
		port = "5010"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var svc service.Service
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v) — using memory-backed repo", err)
			svc = service.NewMemoryService()
		} else {
			dbName := os.Getenv("MONGODB_DATABASE")
			if dbName == "" {
				dbName = "avtostart"
			}
			svc = service.NewMongoService(client.Database(dbName).Collection("documents"))
		}
	} else {
		svc = service.NewMemoryService()
	}

	env := os.Getenv("SERVER_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	h := handler.New(svc, nil, gate.ForEnvironment(env), env == "production")
	h.Register(r.Group("/api"))

	log.Printf("document registry listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
