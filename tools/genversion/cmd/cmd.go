package main

import (
	"fmt"
	"os"

	"github.com/MobRulesGames/tabletop/tools/genversion"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s path/to/.git/HEAD path/to/gen/version.go\n", os.Args[0])
		os.Exit(1)
	}

	commit, err := genversion.ReadCommit(os.Args[1])
	if err != nil {
		// Builds from a source tarball have no .git; stamp them as such.
		fmt.Fprintf(os.Stderr, "genversion: %v\n", err)
		commit = "unknown"
	}
	if err := genversion.WriteFile(commit, os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "genversion: %v\n", err)
		os.Exit(1)
	}
}
