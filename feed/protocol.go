package feed

import "arenashooter/game"

const (
	SnapshotOp int = iota
	HealthOp
	AmmoOp
	ScoreOp
	GameOverOp
	FPSOp
)

// Committed state at the end of a frame
type SnapshotMessage struct {
	Op       int // SnapshotOp
	Snapshot game.Snapshot
}

type HealthMessage struct {
	Op      int // HealthOp
	Current float64
	Max     float64
}

type AmmoMessage struct {
	Op      int // AmmoOp
	Current int
	Max     int
}

type ScoreMessage struct {
	Op    int // ScoreOp
	Score int
}

// Sent once per match
type GameOverMessage struct {
	Op    int // GameOverOp
	Score int
}

type FPSMessage struct {
	Op  int // FPSOp
	FPS float64
}

type GenericMessage struct {
	Op int
}
