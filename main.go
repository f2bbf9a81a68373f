package main

import "github.com/dlukegordon/majjit/cmd"

func main() {
	cmd.Execute()
}
