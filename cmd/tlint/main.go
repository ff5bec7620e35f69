package main

import (
	"fmt"
	"os"

	"github.com/guicamillo/eslint-plugin-testing-library/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
