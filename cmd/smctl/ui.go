package main

import "github.com/fatih/color"

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow, color.Bold)
)

func printAccent(msg string) {
	accent.Println(msg)
}

func printSuccess(msg string) {
	success.Println("[ok] " + msg)
}

func printWarn(msg string) {
	warning.Println("[!] " + msg)
}
