package main

import (
	"log"

	"github.com/MrSnakeDoc/quotewits/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ quotewits failed to start: %v", err)
	}
}
