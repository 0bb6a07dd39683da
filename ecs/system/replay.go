package system

// ReplayStep holds one raw input for Frames consecutive frames.
type ReplayStep struct {
	RawInput `yaml:",inline"`
	Frames   int `yaml:"frames"`
}

// ReplaySource plays back a fixed input script, then reports no input.
type ReplaySource struct {
	steps []ReplayStep
	index int
	used  int
}

func NewReplaySource(steps []ReplayStep) *ReplaySource {
	return &ReplaySource{steps: append([]ReplayStep(nil), steps...)}
}

func (r *ReplaySource) Poll() RawInput {
	for r.index < len(r.steps) {
		step := r.steps[r.index]
		frames := step.Frames
		if frames <= 0 {
			frames = 1
		}
		if r.used < frames {
			r.used++
			return step.RawInput
		}
		r.index++
		r.used = 0
	}
	return RawInput{}
}

// Done reports whether every step has been played.
func (r *ReplaySource) Done() bool {
	if r.index >= len(r.steps) {
		return true
	}
	if r.index == len(r.steps)-1 {
		frames := r.steps[r.index].Frames
		if frames <= 0 {
			frames = 1
		}
		return r.used >= frames
	}
	return false
}

// TotalFrames is the length of the script in frames.
func (r *ReplaySource) TotalFrames() int {
	total := 0
	for _, step := range r.steps {
		if step.Frames <= 0 {
			total++
			continue
		}
		total += step.Frames
	}
	return total
}
