// Command taskctl runs operational tasks against a taskboard deployment.
package main

func main() {
	Execute()
}
