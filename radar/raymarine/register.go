package raymarine

import "github.com/mayara-radar/mayara/radar"

func init() {
	radar.Register(radar.Raymarine, New)
}
