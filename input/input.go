package input

// Frame is the player's input for one tick. Jump is the held value; edge
// detection belongs to the consumer.
type Frame struct {
	MoveX float64
	Jump  bool
	Die   bool
}

// Source yields one frame per fixed tick.
type Source interface {
	Next(tick uint64) (Frame, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(tick uint64) (Frame, error)

func (f SourceFunc) Next(tick uint64) (Frame, error) {
	return f(tick)
}

// Sequence replays a fixed list of frames, then idles.
type Sequence struct {
	frames []Frame
}

func NewSequence(frames ...Frame) *Sequence {
	return &Sequence{frames: frames}
}

func (s *Sequence) Next(tick uint64) (Frame, error) {
	if s == nil || tick >= uint64(len(s.frames)) {
		return Frame{}, nil
	}
	return s.frames[tick], nil
}

func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Hold repeats f for n ticks.
func Hold(n int, f Frame) []Frame {
	if n <= 0 {
		return nil
	}
	out := make([]Frame, n)
	for i := range out {
		out[i] = f
	}
	return out
}

// Concat joins frame runs built with Hold.
func Concat(runs ...[]Frame) []Frame {
	var out []Frame
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}
