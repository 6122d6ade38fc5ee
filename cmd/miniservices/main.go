// Package main is the entry point of the miniservices binary.
package main

import "github.com/OluSmartDev/3mtt-module3-miniprojects/cmd/miniservices/cmd"

// @title        Mini Services API
// @version      1.0
// @description  Compute, items and users introductory services
// @BasePath     /
func main() {
	cmd.Execute()
}
