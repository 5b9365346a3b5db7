package main

import "github.com/treelab/memfs/cmd/memfs/commands"

func main() {
	commands.Execute()
}
