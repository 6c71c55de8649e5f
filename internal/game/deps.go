package game

import (
	"fmt"

	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/platform"
	"github.com/tomz197/galactic/internal/spawn"
	"github.com/tomz197/galactic/internal/store"
	"github.com/tomz197/galactic/internal/world"
)

// ForPlayer returns Deps for a named local player: their save file under
// dataDir, offline platform services and the world options of the named
// scale profile.
// The caller fills in Sounds and Logger.
func ForPlayer(dataDir, user string, sharer platform.Sharer, tiers spawn.Tiers, profile string, seed uint64) (Deps, error) {
	st, err := store.Open(store.PathFor(dataDir, user))
	if err != nil {
		return Deps{}, fmt.Errorf("open save for %s: %w", user, err)
	}
	opts, err := world.OptionsFor(profile, object.NewRand(seed))
	if err != nil {
		return Deps{}, err
	}
	opts.Tiers = tiers
	return Deps{
		Store:    st,
		Services: platform.Local(user, sharer),
		World:    opts,
	}, nil
}
