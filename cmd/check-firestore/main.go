// Command check-firestore verifies connectivity and prints document counts for
// the portal collections, plus one sample building so the buildingObjects
// shape can be inspected.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/planor/portal-api/internal/platform/config"
	firestoreclient "github.com/planor/portal-api/internal/platform/firestore"
	"google.golang.org/api/iterator"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer client.Close()

	fmt.Printf("connected to project %s using %s credentials\n\n", cfg.FirebaseProjectID, credsSource)

	for _, collection := range []string{"buildings", "pricelists", "properties", "clients"} {
		count := 0
		iter := client.Collection(collection).Documents(ctx)
		for {
			_, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Fatalf("iterate %s: %v", collection, err)
			}
			count++
		}
		iter.Stop()
		fmt.Printf("%-12s %d documents\n", collection, count)
	}

	iter := client.Collection("buildings").Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		fmt.Println("\nno buildings to sample")
		return
	}
	if err != nil {
		log.Fatalf("sample building: %v", err)
	}

	pretty, err := json.MarshalIndent(doc.Data(), "", "  ")
	if err != nil {
		log.Fatalf("marshal sample: %v", err)
	}
	fmt.Printf("\nsample building %s:\n%s\n", doc.Ref.ID, pretty)
}
