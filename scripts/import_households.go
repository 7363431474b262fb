package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/model"
	"wedding-rsvp/internal/store"
)

// One-off importer for the initial guest list. Reads a CSV with one
// household per line:
//
//	invitee_name,brunch(yes/no),guest;guest;+1
//
// where "+1" marks an unnamed, name-editable plus-one slot. Every household
// gets a generated invite code and the default RSVP deadline.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s guests.csv", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	st, err := store.NewPostgres(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	created := 0
	failed := 0
	for i, row := range rows {
		if len(row) < 2 {
			log.Printf("Skipping row %d: expected at least 2 columns", i+1)
			failed++
			continue
		}

		inviteeName := strings.TrimSpace(row[0])
		brunch := strings.EqualFold(strings.TrimSpace(row[1]), "yes")
		rec := &model.HouseholdRecord{
			RSVPDeadline: cfg.DefaultRSVPDeadline,
			Invitee: model.Person{
				Name:                  &inviteeName,
				AllowedToAttendBrunch: brunch,
			},
		}

		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			for _, g := range strings.Split(row[2], ";") {
				g = strings.TrimSpace(g)
				person := model.Person{AllowedToAttendBrunch: brunch}
				if g == "+1" {
					person.IsNameEditable = true
				} else {
					name := g
					person.Name = &name
				}
				rec.Guests = append(rec.Guests, person)
			}
		}

		if err := st.Create(context.Background(), rec); err != nil {
			log.Printf("Failed to create household for %q: %v", inviteeName, err)
			failed++
			continue
		}
		fmt.Printf("Created %s: %s (%d guests)\n", rec.InviteCode, inviteeName, len(rec.Guests))
		created++
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Created: %d\n", created)
	fmt.Printf("  Failed: %d\n", failed)
}
