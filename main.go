// Command smallc builds syntax trees and symbol tables for small-C programs
// from s-expression parse tree descriptions.
package main

import "os"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
