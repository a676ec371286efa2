package main

import (
	"os"

	"github.com/learnquest/learnquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
