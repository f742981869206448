package main

import "github.com/Mohsinsiddi/suikit/cmd"

func main() {
	cmd.Execute()
}
