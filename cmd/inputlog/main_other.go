// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "inputlog: only supported on linux")
	os.Exit(1)
}
