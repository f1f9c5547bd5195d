package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// 1. Load .env BEFORE importing the function package
	_ "github.com/joho/godotenv/autoload"

	function "smorg/backend"

	emulatorAuth "smorg/backend/internal/auth"
	"smorg/backend/internal/scheduler"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

// the main function starts the Functions Framework server - only needed when running locally
func main() {
	port := "5000"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}

	// Create Local Admin User if Emulator is detected
	if os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") != "" {
		go createLocalAdminUser()
	}

	// Deployed functions are pruned by an external trigger on POST /events/prune.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := function.App.Config
	pruner := scheduler.New(function.App.Events, cfg.PruneSchedule, cfg.PruneRetention)
	if err := pruner.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer pruner.Stop()

	log.Println("Server starting on http://127.0.0.1:" + port)
	log.Println("Swagger UI: http://127.0.0.1:" + port + "/swagger/index.html")

	errCh := make(chan error, 1)
	go func() {
		errCh <- funcframework.StartHostPort(hostname, port)
	}()

	select {
	case err := <-errCh:
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	case <-ctx.Done():
		log.Println("Shutting down")
	}
}

func createLocalAdminUser() {
	// Give the server/emulator a split second to settle
	time.Sleep(1 * time.Second)

	ctx := context.Background()
	adminUID := os.Getenv("FIRESTORE_ADMIN_UID")
	if adminUID == "" {
		log.Println("[admin] Skipping local user creation: FIRESTORE_ADMIN_UID not set")
		return
	}

	projectID := function.App.Config.ProjectID

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		log.Printf("[admin] Failed to init firebase app: %v", err)
		return
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Printf("[admin] Failed to get auth client: %v", err)
		return
	}

	if u, err := client.GetUser(ctx, adminUID); err == nil {
		log.Printf("[admin] User '%s' already exists (UID: %s)", u.DisplayName, adminUID)
	} else {
		params := (&auth.UserToCreate{}).
			UID(adminUID).
			Email("admin@localhost.com").
			EmailVerified(true).
			Password("admin123").
			DisplayName("Local Admin")

		if _, err := client.CreateUser(ctx, params); err != nil {
			log.Printf("[admin] Failed to create user (Emulator might be down): %v", err)
			return
		}
		log.Printf("[admin] Created user: %s", adminUID)
	}

	token, err := emulatorAuth.GenerateEmulatorToken(projectID, adminUID)
	if err != nil {
		log.Printf("[admin] Failed to mint token: %v", err)
		return
	}

	log.Println("---------------------------------------------------------")
	log.Printf("ADMIN TOKEN (Copy to Swagger 'Authorize'):\nBearer %s", token)
	log.Println("---------------------------------------------------------")
}
