package scenes

import (
	"github.com/gonewx/crimson/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene         = (*MenuScene)(nil)
	_ Scene         = (*PlayScene)(nil)
	_ game.Saveable = (*PlayScene)(nil)
)
