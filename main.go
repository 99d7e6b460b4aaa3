package main

import "github.com/shanaka95/DevOpsAgent/cmd"

func main() {
	cmd.Execute()
}
