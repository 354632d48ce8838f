package main

import "gpxgrip/cmd"

func main() {
	cmd.Execute()
}
