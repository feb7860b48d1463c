// SPDX-License-Identifier: MPL-2.0

// Command max is a personal developer CLI assembled from independently
// toggleable modules.
package main

import cmd "maxcli/cmd/max"

func main() {
	cmd.Execute()
}
