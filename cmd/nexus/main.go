// nexus is the hybrid threat assessment CLI: build versioned assessment
// chains, revise them signal by signal, score inference pressure, run
// the cognitive bias battery, and export analyst briefings.
//
// Usage:
//
//	nexus init -f assessment.yaml
//	nexus list
//	nexus inspect <id> [--version N] [--history]
//	nexus add-signal <id> --description ... --reliability ... --polarity ... --hypothesis H1
//	nexus add-hypothesis <id> --statement ... [--confidence C] [--primary]
//	nexus add-vector <id> --actor ... --capability ... --intent ... --domain ...
//	nexus set-confidence <id> --hypothesis H1 --confidence C
//	nexus score <id> [--epsilon E]
//	nexus audit [<id>] [--all] [--config audit.yaml]
//	nexus export <id> --format md|dot|yaml|json [-o path]
//	nexus import -f document.yaml
//	nexus simulate [--name NAME]
//	nexus serve [--mem]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
