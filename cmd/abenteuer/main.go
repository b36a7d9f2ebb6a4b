// Command abenteuer plays branching German practice stories in the
// terminal and serves them over HTTP and MCP.
package main

func main() {
	Execute()
}
