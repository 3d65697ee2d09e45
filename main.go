package main

import (
	"flag"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs; env vars win over defaults either way.
	godotenv.Load()
	flag.Parse()

	server := Setup()
	server.Run()
}
