// Package flavor holds the work flavor-text pools: one list of lines for
// players who own somebody (passive-income framing) and one for everyone
// else. The pool is loaded from a JSON resource with a built-in fallback.
package flavor

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

type Pool struct {
	Owner  []string `json:"owner"`
	Worker []string `json:"worker"`
}

func defaultPool() *Pool {
	return &Pool{
		Owner: []string{
			"your estate pays out while you sip coffee, earning you",
			"a lucky scratch card ticket nets you",
			"flipping junk on the marketplace brings in",
			"a street performance for tips earns you",
		},
		Worker: []string{
			"a long honest shift earns you",
			"finishing an odd job pays you",
			"helping around the house gets you",
		},
	}
}

// Load reads the resource file, falling back to the built-in pool when the
// file is missing or unusable. Either role missing from the file keeps its
// fallback lines.
func Load(path string) *Pool {
	pool := defaultPool()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("flavor file unreadable, using built-in lines")
		}
		return pool
	}
	var loaded Pool
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.WithError(err).Warn("flavor file corrupt, using built-in lines")
		return pool
	}
	if len(loaded.Owner) > 0 {
		pool.Owner = loaded.Owner
	}
	if len(loaded.Worker) > 0 {
		pool.Worker = loaded.Worker
	}
	return pool
}

// Lines returns the pool for the given role.
func (p *Pool) Lines(owner bool) []string {
	if owner {
		return p.Owner
	}
	return p.Worker
}
