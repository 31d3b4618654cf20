// Command scenemigrate migrates legacy math3d scenes to the new item schema.
package main

import "github.com/mesh-intelligence/math3d-scenes/internal/cli"

func main() {
	cli.Execute()
}
