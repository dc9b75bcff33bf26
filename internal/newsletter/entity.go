// AngelaMos | 2026
// entity.go

package newsletter

import "time"

type Subscriber struct {
	ID             string     `db:"id"`
	Email          string     `db:"email"`
	SubscribedAt   time.Time  `db:"subscribed_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at"`
}

func (s *Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}
