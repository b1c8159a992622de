package main

import "github.com/commute-microservice/internal/cli"

func main() {
	cli.Execute()
}
