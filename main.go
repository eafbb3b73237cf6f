package main

import (
	"fmt"
	"os"

	"attio-sync/cli"

	"k8s.io/klog/v2"
)

func main() {
	err := cli.NewRootCommand().Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
