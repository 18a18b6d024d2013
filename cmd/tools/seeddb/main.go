// seeddb writes the default collections into the data file so a fresh
// install has categories, a gate password and the view counter in place.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/dchamindu826/norcal-dubs/internal/config"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/admins"
)

func main() {
	_ = godotenv.Load()

	gatePass := flag.String("gate", "", "initial gate password (skipped when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := jsonstore.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("open %s: %v", cfg.DataFile, err)
	}

	cats := jsonstore.NewCollection[string](store, "categories")
	existing, err := cats.All()
	if err != nil {
		log.Fatalf("read categories: %v", err)
	}
	if len(existing) == 0 {
		if err := cats.Replace([]string{"Exotic", "Indoor"}); err != nil {
			log.Fatalf("seed categories: %v", err)
		}
		log.Println("seeded default categories")
	}

	views := jsonstore.NewScalar[int](store, "views")
	if v, _ := views.Get(); v == 0 {
		if err := views.Set(1250); err != nil {
			log.Fatalf("seed views: %v", err)
		}
		log.Println("seeded view counter")
	}

	if *gatePass != "" {
		if err := admins.NewService(store).SetGate(context.Background(), *gatePass); err != nil {
			log.Fatalf("set gate password: %v", err)
		}
		log.Println("gate password set")
	}

	log.Printf("done: %s", cfg.DataFile)
}
