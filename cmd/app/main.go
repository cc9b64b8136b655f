package main

import (
	"fmt"
	"os"

	"github-portfolio-auditor/internal/common"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", common.MessageOf(err))
		os.Exit(1)
	}
}
