package main

import (
	"log"

	"github.com/spigell/careerdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
