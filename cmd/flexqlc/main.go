// Command flexqlc is a debug tool, not the bundler: it feeds a
// JSON-serialized ir.Node fixture through flexql.Compiler and prints the
// resulting compound query. Useful while developing lowering rules without
// a full schema-generation and GraphQL front end wired up.
package main

func main() {
	Cmd()
}
