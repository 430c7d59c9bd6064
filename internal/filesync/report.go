package filesync

// Report collects the outcomes of one sync pass.
type Report struct {
	Outcomes []Outcome
}

// Add records an outcome.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Written returns the paths that were (or, in dry-run mode, would be) written.
func (r Report) Written() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Written {
			out = append(out, o.Path)
		}
	}
	return out
}

// Unchanged returns the paths whose content already matched.
func (r Report) Unchanged() []string {
	var out []string
	for _, o := range r.Outcomes {
		if !o.Written {
			out = append(out, o.Path)
		}
	}
	return out
}
