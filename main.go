package main

import "github.com/arvandy/storefront/cmd"

func main() {
	cmd.Start()
}
