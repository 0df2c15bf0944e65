package main

import "emi-planner/cmd"

func main() {
	cmd.Execute()
}
