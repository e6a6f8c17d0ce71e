package main

import (
	"fmt"
	"os"
)

const (
	appName = "rotaclock"
	appID   = "com.rotaclock.app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
