package main

import (
	"github.com/jsphweid/tabplay/cmd"
)

func main() {
	cmd.Execute()
}
