package main

import "github.com/jsphweid/fingerchart/cmd"

func main() {
	cmd.Execute()
}
