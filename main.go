package main

import "github.com/wangdayong228/lw3punks-client/cmd"

func main() {
	cmd.Execute()
}
