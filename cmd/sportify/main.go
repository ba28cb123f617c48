package main

import (
	_ "sportify/docs"

	"sportify/cmd/sportify/cmd"
)

func main() {
	cmd.Execute()
}
