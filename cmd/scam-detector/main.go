// Package main provides the entry point for the scam detector.
//
// Usage:
//
//	scam-detector serve
//	scam-detector tui
//	scam-detector check "message text"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
