package main

import "github.com/fenv-org/flutter-test-output-parser/cmd"

func main() {
	cmd.Execute()
}
