package main

import (
	"log"

	"opsdash/internal/app/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		log.Fatal(err)
	}
}
