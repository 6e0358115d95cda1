// Command validate checks a world definition document and reports every
// structural and business-rule finding.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/louisbranch/gridfall/internal/world/validate"
)

func main() {
	log.SetPrefix("[VALIDATE] ")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: validate <world-file>")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read world: %v", err)
	}

	def, errs := validate.Bytes(data)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s\n", e)
		}
		os.Exit(1)
	}

	fmt.Printf("%s: ok (%d circuits)\n", path, len(def.Circuits))
}
