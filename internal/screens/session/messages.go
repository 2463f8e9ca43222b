package session

import "time"

// timerTickMsg is sent every second while a quiz is running.
type timerTickMsg time.Time

// gameEndMsg is sent to trigger the end-of-game flow.
type gameEndMsg struct{}
