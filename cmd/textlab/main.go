package main

import (
	"github.com/joho/godotenv"

	"textlab/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
