package main

import "gridstat/cmd"

func main() {
	cmd.Execute()
}
