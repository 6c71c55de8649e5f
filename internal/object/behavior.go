package object

import (
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/physics"
)

// Spawner allows entities to spawn new entities during update.
type Spawner interface {
	Spawn(e *Entity)
}

// UpdateContext provides what an entity behaviour may read or produce during a tick.
type UpdateContext struct {
	Field   Field
	Player  *Entity // nil when there is no player
	Spawner Spawner
}

// playerAlive reports whether the context has a live player to react to.
func (c UpdateContext) playerAlive() bool {
	return c.Player != nil && !c.Player.Dead
}

// Behavior is the per-kind capability set.
type Behavior struct {
	Update    func(e *Entity, ctx UpdateContext)
	OnDestroy func(e *Entity)
}

func noUpdate(*Entity, UpdateContext) {}
func noCleanup(*Entity)               {}

var behaviors = [kindCount]Behavior{
	KindPlayer:      {Update: noUpdate, OnDestroy: noCleanup},
	KindEnemyRocket: {Update: noUpdate, OnDestroy: noCleanup},
	KindEnemyStrike: {Update: updateStrike, OnDestroy: stopFiring},
	KindEnemyUfo:    {Update: updateUfo, OnDestroy: noCleanup},
	KindLaserEnemy:  {Update: noUpdate, OnDestroy: noCleanup},
	KindLaserPlayer: {Update: noUpdate, OnDestroy: noCleanup},
}

func behaviorFor(k Kind) Behavior {
	if k < 0 || k >= kindCount {
		return Behavior{Update: noUpdate, OnDestroy: noCleanup}
	}
	return behaviors[k]
}

// updateStrike counts down to the next laser and fires straight down.
func updateStrike(e *Entity, ctx UpdateContext) {
	if !e.Firing {
		return
	}
	e.FireCountdown--
	if e.FireCountdown > 0 {
		return
	}
	e.FireCountdown = config.Ticks(config.StrikeFireInterval)
	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(NewLaserEnemy(e.X, e.Y, e.Scale))
	}
}

func stopFiring(e *Entity) {
	e.Firing = false
	e.FireCountdown = 0
}

// updateUfo drifts until the player comes within the chase radius, then
// steers at the player every tick for the rest of its life.
func updateUfo(e *Entity, ctx UpdateContext) {
	if !ctx.playerAlive() {
		return
	}
	p := ctx.Player
	if !e.Chasing && physics.Within(e.X, e.Y, p.X, p.Y, config.UfoChaseRadius) {
		e.Chasing = true
	}
	if !e.Chasing {
		return
	}
	e.VX, e.VY = physics.Toward(e.X, e.Y, p.X, p.Y, config.UfoChaseSpeed)
	if e.X < p.X {
		e.Angle = NormalizeAngle(e.Angle + config.UfoTurnLeft)
	} else {
		e.Angle = NormalizeAngle(e.Angle + config.UfoTurnRight)
	}
}
