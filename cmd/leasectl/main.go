// Package main is the entry point for the leasectl operator CLI.
package main

import (
	"os"

	"github.com/burhanudinera2018/microservice-management-aset-v2/cmd/leasectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
