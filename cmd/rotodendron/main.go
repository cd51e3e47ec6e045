package main

import (
	"os"
	"strings"

	"rotodendron/internal/cli"
)

// rewriteNegatedFlags accepts `--no-autoloop`, which pflag has no notion of,
// by turning it into `--autoloop=false` before cobra parses argv.
func rewriteNegatedFlags(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i, a := range argv {
		if a == "--" {
			out = append(out, argv[i:]...)
			break
		}
		if strings.TrimSpace(a) == "--no-autoloop" {
			a = "--autoloop=false"
		}
		out = append(out, a)
	}
	return out
}

func main() {
	os.Args = rewriteNegatedFlags(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
