package main

import "github.com/Dijital-human/yusu-admin/cmd"

func main() {
	cmd.Execute()
}
