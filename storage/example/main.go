package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ggoodman/slashcmd-go/storage"
	"github.com/ggoodman/slashcmd-go/storage/memory"
)

func main() {
	// Create a new in-memory storage with max 1000 items
	store, err := memory.New(1000)
	if err != nil {
		log.Fatal("Failed to create storage:", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Global fingerprints live outside any guild
	fmt.Println("=== Global ===")
	if err := store.Set(ctx, "ping", []byte("3f1a9c")); err != nil {
		log.Fatal("Failed to set global fingerprint:", err)
	}
	item, err := store.Get(ctx, "ping")
	if err != nil {
		log.Fatal("Failed to get global fingerprint:", err)
	}
	if item != nil {
		fmt.Printf("global ping: %s\n", item.Data)
	}

	// The same key in two guilds does not collide
	fmt.Println("\n=== Guilds ===")
	for _, guild := range []string{"1001", "1002"} {
		if err := store.Set(ctx, "ping", []byte("fp-"+guild), storage.WithGuild(guild)); err != nil {
			log.Fatal("Failed to set guild fingerprint:", err)
		}
	}
	for _, guild := range []string{"1001", "1002"} {
		item, _ := store.Get(ctx, "ping", storage.WithGuild(guild))
		fmt.Printf("guild %s ping: %s\n", guild, item.Data)
	}

	// Fingerprints with a TTL force a re-register once they lapse
	fmt.Println("\n=== TTL ===")
	err = store.Set(ctx, "remind", []byte("77be02"), storage.WithGuild("1001"), storage.WithTTL(time.Second))
	if err != nil {
		log.Fatal("Failed to set expiring fingerprint:", err)
	}
	time.Sleep(1500 * time.Millisecond)
	if item, _ := store.Get(ctx, "remind", storage.WithGuild("1001")); item == nil {
		fmt.Println("remind expired; next sync registers it again")
	}

	// Forget one command, then a whole guild
	fmt.Println("\n=== Deletion ===")
	if err := store.Delete(ctx, storage.WithGuild("1001"), storage.WithKey("ping")); err != nil {
		log.Fatal("Failed to delete guild key:", err)
	}
	if err := store.Delete(ctx, storage.WithGuild("1002")); err != nil {
		log.Fatal("Failed to delete guild:", err)
	}
	for _, guild := range []string{"1001", "1002"} {
		if item, _ := store.Get(ctx, "ping", storage.WithGuild(guild)); item == nil {
			fmt.Printf("guild %s forgotten\n", guild)
		}
	}
	if item, _ := store.Get(ctx, "ping"); item != nil {
		fmt.Printf("global ping still stored: %s\n", item.Data)
	}
}
