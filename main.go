package main

import (
	"log"
	"os"

	"inkboard/internal/ui"
)

func main() {
	if len(os.Args) > 1 {
		log.Printf("Opening image markup for %s", os.Args[1])
		ui.RunMarkup(os.Args[1])
		return
	}
	log.Println("Opening whiteboard")
	ui.RunWhiteboard()
}
