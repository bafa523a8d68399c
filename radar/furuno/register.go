package furuno

import "github.com/mayara-radar/mayara/radar"

func init() {
	radar.Register(radar.Furuno, New)
}
