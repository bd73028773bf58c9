package main

import (
	"flag"
	"os"

	"github.com/bnema/camp-cli/cmd"
	"github.com/golang/glog"
)

func main() {
	_ = flag.CommandLine.Parse(nil)
	defer glog.Flush()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
