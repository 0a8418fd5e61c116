package engine

// Phase is a step of the turn cycle.
type Phase int

const (
	PhaseIdle Phase = iota // Not started yet
	PhaseStartup
	PhaseSpawn
	PhaseResolveSpawnLines
	PhaseCheckFull
	PhaseAwaitMove
	PhaseResolveMoveLines
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseStartup:
		return "Startup"
	case PhaseSpawn:
		return "Spawn"
	case PhaseResolveSpawnLines:
		return "ResolveSpawnLines"
	case PhaseCheckFull:
		return "CheckFull"
	case PhaseAwaitMove:
		return "AwaitMove"
	case PhaseResolveMoveLines:
		return "ResolveMoveLines"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
