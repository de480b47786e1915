package main

import "github.com/StinkyLord/build-info-recorder/cmd"

func main() {
	cmd.Execute()
}
