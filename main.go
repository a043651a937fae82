package main

import "github.com/iksnae/case-evidence/cmd"

func main() {
	cmd.Execute()
}
