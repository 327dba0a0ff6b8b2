// Package main implements the entry point for the PixGen API server,
// which queues asynchronous image-generation jobs against Google's Gemini
// API and meters a simple credit balance.
package main

import (
	"context"
	"log"
)

// main is the entry point for the pixgen-api server.
// It initializes configuration, sets up logging, injects dependencies,
// and starts the HTTP server.
func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
