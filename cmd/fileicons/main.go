package main

import "github.com/mvp-joe/fileicons/internal/cli"

func main() {
	cli.Execute()
}
