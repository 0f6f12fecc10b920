// Command pickprobe replays a YAML scene through the picking backend and
// prints every hit batch as a JSON line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
