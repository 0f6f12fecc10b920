package picking

// Stage is a named slot in the per-frame pipeline.
type Stage uint8

const (
	StageInput   Stage = iota // pointer positions are updated
	StageCamera                // camera transforms and viewports are updated
	StageBackend               // picking backends run
	StageConsume               // hit batches are merged and acted on
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageCamera:
		return "camera"
	case StageBackend:
		return "backend"
	case StageConsume:
		return "consume"
	default:
		return "unknown"
	}
}

// Schedule runs systems stage by stage in the fixed order
// StageInput, StageCamera, StageBackend, StageConsume. Within a stage,
// systems run in the order they were added.
type Schedule struct {
	stages [stageCount][]func()
}

// Add registers fn to run in stage. Unknown stages are ignored.
func (s *Schedule) Add(stage Stage, fn func()) {
	if stage >= stageCount || fn == nil {
		return
	}
	s.stages[stage] = append(s.stages[stage], fn)
}

// AddBackend registers b to run in StageBackend, emitting into sink.
func (s *Schedule) AddBackend(b *Backend, sink HitSink) {
	s.Add(StageBackend, func() { b.Run(sink) })
}

// Tick runs every registered system once, stage by stage.
func (s *Schedule) Tick() {
	for i := range s.stages {
		for _, fn := range s.stages[i] {
			fn()
		}
	}
}
