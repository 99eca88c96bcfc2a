package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/simmerfood/menubot/lib/myhttp"
	"github.com/simmerfood/menubot/lib/mypublisher"
	"github.com/simmerfood/menubot/lib/mypubsub"
	"github.com/simmerfood/menubot/lib/myqueue"
	"github.com/simmerfood/menubot/lib/mytime"
	"github.com/simmerfood/menubot/lib/myuuid"
	"github.com/simmerfood/menubot/services/menu"
	"github.com/simmerfood/menubot/services/ordering"
	"github.com/simmerfood/menubot/services/shopper"
)

func main() {
	c := context.Background()

	// Local development reads config from a .env file, deployed environments
	// use real env vars
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: using environment as-is")
	}

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	menuStore, err := menu.New(menu.Load(optionalEnvString("MENU_FILE", "data/menu.json")))
	if err != nil {
		log.Fatalf("Error loading menu: %s", err)
	}
	log.Printf("Loaded menu with %d items", menuStore.ItemCount())

	shopperStore, shopperCleanup, err := shopper.NewStore(c, menuStore)
	if err != nil {
		log.Fatalf("Error creating shopper store: %s", err)
	}
	defer shopperCleanup()

	orderingService := ordering.NewWebService(menuStore, shopperStore, publisher, nower, uuider, limitsFromEnv())
	err = orderingService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering ordering endpoints: %s", err)
	}

	startWebServerBlocking(router)
}

func limitsFromEnv() ordering.Limits {
	limits := ordering.DefaultLimits()
	limits.PageSize = optionalEnvInt("PAGE_SIZE", limits.PageSize)
	limits.MaxFavorites = optionalEnvInt("MAX_FAVORITES", limits.MaxFavorites)
	limits.MaxCartLines = optionalEnvInt("MAX_CART_LINES", limits.MaxCartLines)
	limits.MaxSearchResults = optionalEnvInt("MAX_SEARCH_RESULTS", limits.MaxSearchResults)

	return limits
}

func optionalEnvString(name string, def string) string {
	value := os.Getenv(name)
	if value == "" {
		return def
	}

	return value
}

func optionalEnvInt(name string, def int) int {
	value, err := strconv.Atoi(os.Getenv(name))
	if err != nil || value < 1 {
		return def
	}

	return value
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try %s)", port, myhttp.GuessHostnameWithScheme())
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
