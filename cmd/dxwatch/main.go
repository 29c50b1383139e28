package main

import (
	"log"

	"github.com/dxwatch/dxwatch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("dxwatch failed to start: %v", err)
	}
}
