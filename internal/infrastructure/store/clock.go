package store

import "time"

type timeSource func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
