package main

import "github.com/datastax/page-data-blocks/cmd"

func main() {
	cmd.Execute()
}
