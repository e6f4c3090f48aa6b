package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/troynguyen8/tetris-sandbox/internal/cli"
)

func isShareLink(s string) bool {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '#')
	return i >= 0 && i < len(s)-1
}

func isBoardID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "board-") && len(s) > len("board-")
}

// rewriteDirectArgs turns `tetris-sandbox <link>` into `import <link>` and
// `tetris-sandbox <board-id>` into `boards load <board-id>`. Cobra treats the
// first positional token as a subcommand, so this runs before parsing.
func rewriteDirectArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--format":    true,
		"--log-file":  true,
		"--log-level": true,
	}

	rewrite := func(i int) []string {
		var sub []string
		switch {
		case isShareLink(argv[i]):
			sub = []string{"import"}
		case isBoardID(argv[i]):
			sub = []string{"boards", "load"}
		default:
			return argv
		}
		out := make([]string, 0, len(argv)+len(sub))
		out = append(out, argv[:i]...)
		out = append(out, sub...)
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) {
				return rewrite(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		return rewrite(i)
	}
	return argv
}

func main() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	os.Args = rewriteDirectArgs(os.Args)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
