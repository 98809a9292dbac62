package main

import "github.com/naka-gawa/community-spotlight/cmd"

func main() {
	cmd.Execute()
}
