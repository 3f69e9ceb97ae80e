package main

import (
	"errors"
	"fmt"
	"os"
)

// errReported marks failures that were already shown to the operator
var errReported = errors.New("pipeline failed")

// @title YouTube Comment Sentiment Pipeline API
// @version 1.0
// @description Fetch YouTube comments, score their sentiment and build a PDF report.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
