// Command hdv runs the hypervector demos and exports random vector
// collections.
//
// Usage:
//
//	hdv dollar  [flags]              What is the dollar of Mexico?
//	hdv plate   [flags] [-out pfx]   Plate's HRR objects and sentences
//	hdv langid  [flags] -train dir   Train language prototypes, classify stdin
//	hdv export  [flags] [-n N]       Write N random vectors (binary or CSV)
//	hdv inspect [flags] [-i file]    Summarize a binary collection
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dollar":
		err = runDollar(os.Args[2:])
	case "plate":
		err = runPlate(os.Args[2:])
	case "langid":
		err = runLangID(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func printUsage() {
	fmt.Println(`hdv - hyperdimensional computing demos

Usage:
  hdv dollar [flags]                  Answer "what is the dollar of Mexico?"
  hdv plate [flags] [-out prefix]     Print Plate's object and sentence distances
  hdv langid [flags] -train dir [-eval dir]
                                      Train one prototype per dir/*.txt, then classify
                                      stdin lines or report accuracy on held-out files
  hdv export [flags] [-n N] [-format bin|csv] [-o file]
                                      Write N random vectors
  hdv inspect [flags] [-i file]       Print each vector's nearest neighbour in a collection
  hdv help                            Show this help

Common flags:
  -kind binary|bipolar|real|complex   Representation (default bipolar)
  -dims N                             Components; binary rounds up to 64-bit words (default 1024)
  -seed S                             Random seed (default 42)
  -debug                              Enable debug logs`)
}
