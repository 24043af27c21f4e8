// Command code-cognitio is the CLI entrypoint: build, search, list-file-types,
// and the additive status/version/mcp verbs, all wired through internal/cli.
package main

import "github.com/bivav/code-cognitio/internal/cli"

func main() {
	cli.Execute()
}
