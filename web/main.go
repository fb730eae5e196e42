package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-path-tracer/pkg/config"
	"github.com/df07/go-path-tracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	addr := flag.String("addr", cfg.ServerAddress, "Address to serve on")
	flag.Parse()

	webServer := server.NewServer(*addr)

	log.Printf("Path Tracer Web Server")
	log.Printf("Try http://localhost%s/api/scenes", *addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
