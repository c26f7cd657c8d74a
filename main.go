package main

import (
	"log"

	"github.com/askilde/dispatchdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
