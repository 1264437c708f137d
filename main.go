package main

import (
	"os"

	"github.com/MobRulesGames/tabletop/cmd"
)

func main() {
	cmd.Main(os.Args[1:])
}
