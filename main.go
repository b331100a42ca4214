package main

import "drive-upload-services/cmd"

func main() {
	cmd.Execute()
}
