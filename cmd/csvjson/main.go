// Command csvjson converts between delimited text tables and JSON records.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/shapestone/shape-csvjson/internal/cli"
)

func main() {
	err := cli.NewRootCmd().Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "csvjson:", err)
		os.Exit(1)
	}
}
