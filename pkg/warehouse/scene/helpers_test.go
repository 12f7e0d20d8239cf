package scene

import "time"

func timeMS(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
