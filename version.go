package main

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Set with buildflag if built in pipeline and not using go install
var (
	buildVersion  = ""
	buildChecksum = ""
)

func printVersion() error {
	if buildVersion != "" {
		fmt.Println("version: " + buildVersion)
		if buildChecksum != "" {
			fmt.Println("checksum: " + buildChecksum)
		}
		return nil
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	fmt.Println("version: " + bi.Main.Version)
	return nil
}
