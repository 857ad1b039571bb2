package session

// PassCounter counts passes in the live offense. It never goes below zero.
type PassCounter struct {
	count int
}

func (p *PassCounter) Increment() {
	p.count++
}

func (p *PassCounter) Decrement() {
	if p.count > 0 {
		p.count--
	}
}

func (p *PassCounter) Reset() {
	p.count = 0
}

func (p *PassCounter) Count() int {
	return p.count
}
