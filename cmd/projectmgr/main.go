// Command projectmgr runs the project management API and its tooling.
package main

func main() {
	Execute()
}
