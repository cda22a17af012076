package main

// Broadcaster pushes typed events to every connected client.
type Broadcaster interface {
	BroadcastEvent(eventType string, payload any)
}

// Logger is the logging surface the host and debug system need. zap's
// SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// SequenceGenerator hands out increasing event sequence numbers.
type SequenceGenerator interface {
	Next() uint64
}

// TerrainSource is the passability surface the tile pathfinder reads.
type TerrainSource interface {
	Size() (cols, rows int)
	IsPassable(x, y int) bool
}
