// Command propai is the PropAI data-layer CLI and document-store server.
package main

import "github.com/mesh-intelligence/propai/internal/cli"

func main() {
	cli.Execute()
}
