package main

import "github.com/ntsfreight/client-portal/cmd"

func main() {
	cmd.Execute()
}
