package main

import "slackgraph/cmd/slackgraph-cli/cmd"

func main() {
	cmd.Execute()
}
