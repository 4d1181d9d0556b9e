package main

import (
	"os"

	"github.com/tinytoy-sec/MpamParser/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
