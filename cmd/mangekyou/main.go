// Command mangekyou is a personal watchlist for anime, movies, dramas, and
// games, stored on this machine.
package main

import "github.com/mesh-intelligence/mangekyou/internal/cli"

func main() {
	cli.Execute()
}
