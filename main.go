package main

import "github.com/KatelynHaworth/ucode-sniffer/internal/cmd"

func main() {
	cmd.Execute()
}
