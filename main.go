package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("nutrilog/daily-nutrition-go-api: ")
	log.SetFlags(0)

	// .env is optional in deployed environments where vars are set directly.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded, using environment as-is")
	}

	pool := getDBPool()
	defer pool.Close()

	h := newHandler(pool, "https://api.openai.com")

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	router.Run("localhost:" + port)
}
