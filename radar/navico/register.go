package navico

import "github.com/mayara-radar/mayara/radar"

func init() {
	radar.Register(radar.Navico, New)
}
