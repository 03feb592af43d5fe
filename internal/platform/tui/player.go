package tui

import (
	"os"

	"github.com/denisbrodbeck/machineid"
)

const appID = "tui-sokoban"

// LocalPlayerID returns a stable, anonymised identifier for this machine.
// Local records are attributed to it; SSH sessions use the SSH user instead.
func LocalPlayerID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		if user := os.Getenv("USER"); user != "" {
			return user
		}
		return "local"
	}
	return "local-" + id[:8]
}
