package main

import "github.com/yumyai/orthoxml/cmd"

func main() {
	cmd.Execute()
}
