package main

import "github.com/dbsmedya/nlplaces/cmd/nlplaces/cmd"

func main() {
	cmd.Execute()
}
