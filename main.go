package main

import "github.com/HaiFongPan/s3clone-cli/cmd"

func main() {
	cmd.Execute()
}
