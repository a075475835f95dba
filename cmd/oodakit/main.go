// Command oodakit is the command-line front end of the wargame toolkit.
package main

import "github.com/ppiankov/oodakit/internal/cli"

func main() {
	cli.Execute()
}
