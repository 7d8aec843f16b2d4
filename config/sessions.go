package config

import (
	sessionsvc "Meeple/services/sessions"
	"log"
	"os"
)

// ConnectSessionStore picks the session token store for this process: Redis
// when REDIS_URL is set, otherwise an in-process store.
func ConnectSessionStore() (sessionsvc.Store, func()) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, using in-memory session store")
		return sessionsvc.NewMemoryStore(), func() {}
	}

	store, err := sessionsvc.InitRedis(redisURL, 0)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Redis connection established")
	return store, func() {
		if err := sessionsvc.CloseRedis(store); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
}
