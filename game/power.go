package game

import "github.com/go-gl/mathgl/mgl64"

// Interactor is the other actor of the scene. It pushes the ball and reacts
// to where the ball ends up.
type Interactor interface {
	TransferPower() mgl64.Vec2
	InteractWithBall(pos mgl64.Vec3)
}

// PowerQueue is an Interactor driven from outside: pushes are summed until
// the scene collects them.
type PowerQueue struct {
	pending mgl64.Vec2
	ball    mgl64.Vec3
}

// Push queues force. Each push and the running sum are capped at MaxPower;
// forces that are not finite are dropped.
func (q *PowerQueue) Push(force mgl64.Vec2) {
	if !finite(force.X()) || !finite(force.Y()) {
		return
	}
	q.pending = clampPower(q.pending.Add(clampPower(force)))
}

// TransferPower hands out everything pushed since the last call.
func (q *PowerQueue) TransferPower() mgl64.Vec2 {
	out := q.pending
	q.pending = mgl64.Vec2{}
	return out
}

func (q *PowerQueue) InteractWithBall(pos mgl64.Vec3) {
	q.ball = pos
}

// Ball is the last ball position seen by the queue.
func (q *PowerQueue) Ball() mgl64.Vec3 { return q.ball }
