package main

import "github.com/sartorproj/goregression/internal/cli"

func main() {
	cli.Execute()
}
