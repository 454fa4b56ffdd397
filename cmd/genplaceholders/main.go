package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/wolfmaze/internal/assets"
)

func main() {
	dir := flag.String("out", "assets", "directory to write the placeholders to")
	flag.Parse()

	fmt.Println("Wolfmaze Placeholder Asset Generator")
	fmt.Println("====================================")
	fmt.Println()

	written, err := assets.GenerateAndSave(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}

	fmt.Println()
	fmt.Printf("Done! %d files are ready in %s.\n", len(written), *dir)
	fmt.Println("Edit them by hand and run the maze with -assets to see them.")
}
