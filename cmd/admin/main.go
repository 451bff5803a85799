package main

import (
	"fmt"
	"log"
	"os"

	"complaintdesk/backend/internal/authz"
	"complaintdesk/backend/internal/complaints"
	"complaintdesk/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Ops CLI for complaint triage. Runs against the same lifecycle service as
// the API, with an admin principal.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	svc := complaints.NewService(storageSvc)
	admin := authz.Principal{ID: "cli", Role: authz.RoleAdmin}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list":
		// list [status]
		all, err := svc.ListAll(admin)
		if err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
		statusFilter := ""
		if len(os.Args) > 2 {
			statusFilter = os.Args[2]
		}
		for _, c := range all {
			if statusFilter != "" && c.Status != statusFilter {
				continue
			}
			fmt.Printf("%s  [%s/%s]  %s\n", c.ID, c.Status, c.Priority, c.Title)
		}
	case "review":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin review <complaint_id> <status> [note]")
			os.Exit(1)
		}
		patch := map[string]any{"status": os.Args[3]}
		if len(os.Args) > 4 {
			patch["admin_note"] = os.Args[4]
		}
		updated, err := svc.Update(admin, os.Args[2], patch)
		if err != nil {
			log.Fatalf("Error updating complaint: %v", err)
		}
		fmt.Printf("Complaint %s is now %s.\n", updated.ID, updated.Status)
	case "delete":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete <complaint_id>")
			os.Exit(1)
		}
		if err := svc.Delete(admin, os.Args[2]); err != nil {
			log.Fatalf("Error deleting complaint: %v", err)
		}
		fmt.Printf("Complaint %s has been deleted.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}
