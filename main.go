package main

import "github.com/routelab/routesim/cmd"

func main() {
	cmd.Execute()
}
