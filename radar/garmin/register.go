package garmin

import "github.com/mayara-radar/mayara/radar"

func init() {
	radar.Register(radar.Garmin, New)
}
