/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/lapreport/cmd"

func main() {
	cmd.Execute()
}
