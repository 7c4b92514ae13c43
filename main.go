package main

import "bucket-manager/cmd"

//go:generate swag init -g cmd/start.go -o docs/swagger --outputTypes go

func main() {
	cmd.Execute()
}
