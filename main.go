package main

import "github.com/llehouerou/loopmark/internal/cli/cmd"

func main() {
	cmd.Execute()
}
