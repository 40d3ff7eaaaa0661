package main

import (
	"fmt"
	"time"
)

// printReleaseStatus renders a Helm release summary as a table.
func printReleaseStatus(name, namespace, status string, revision int, lastDeployed time.Time) {
	table := NewTableWriter([]string{"RELEASE", "NAMESPACE", "STATUS", "REVISION", "LAST DEPLOYED"})
	table.AddRow([]string{
		name,
		namespace,
		status,
		fmt.Sprintf("%d", revision),
		lastDeployed.Format(time.RFC3339),
	})
	table.Print()
}
