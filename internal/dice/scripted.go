package dice

// Scripted replays fixed die faces in order. Once the script is exhausted it
// falls back to Fallback, or to 1s when Fallback is nil.
type Scripted struct {
	faces    []int
	Fallback Source
}

// NewScripted queues individual die faces (1-6).
func NewScripted(faces ...int) *Scripted {
	return &Scripted{faces: append([]int(nil), faces...)}
}

// Push appends more faces to the script.
func (s *Scripted) Push(faces ...int) { s.faces = append(s.faces, faces...) }

// PushTotals queues 2d6 totals, splitting each into two faces.
func (s *Scripted) PushTotals(totals ...int) {
	for _, t := range totals {
		a := t / 2
		s.faces = append(s.faces, a, t-a)
	}
}

// Remaining reports unconsumed faces.
func (s *Scripted) Remaining() int { return len(s.faces) }

func (s *Scripted) RollD6(n int) Roll {
	if n < 1 {
		n = 1
	}
	r := Roll{Dice: make([]int, n)}
	for i := range r.Dice {
		switch {
		case len(s.faces) > 0:
			r.Dice[i] = s.faces[0]
			s.faces = s.faces[1:]
		case s.Fallback != nil:
			r.Dice[i] = s.Fallback.RollD6(1).Total
		default:
			r.Dice[i] = 1
		}
		r.Total += r.Dice[i]
	}
	return r
}
