package draw

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// environ serves termenv lookups from a captured KEY=VALUE list, such as the
// environment an SSH client sent.
type environ []string

func (e environ) Environ() []string { return e }

func (e environ) Getenv(key string) string {
	prefix := key + "="
	for i := len(e) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(e[i], prefix); ok {
			return v
		}
	}
	return ""
}

// ProfileFor detects the color profile of a remote terminal from its
// environment. w is never probed for TTY-ness.
func ProfileFor(w io.Writer, env []string) termenv.Profile {
	out := termenv.NewOutput(w, termenv.WithEnvironment(environ(env)), termenv.WithUnsafe())
	return out.EnvColorProfile()
}

// LocalProfile detects the color profile of the process's own terminal.
func LocalProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}
