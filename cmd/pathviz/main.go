// Command pathviz runs grid pathfinding searches from the command line and
// serves them to browsers over HTTP and WebSocket.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
