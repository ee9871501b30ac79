package control

// If runs Cond, always rolling back any edits it made, then runs Then if
// Cond succeeded or Else if it failed.
type If struct {
	Cond, Then, Else Program
}

func (x If) Run(env *Env) Outcome {
	mark := env.Trail.Mark()
	result := x.Cond.Run(env)
	if err := env.Trail.Undo(env.Host, mark); err != nil {
		return Failure
	}
	if result == Success {
		return x.Then.Run(env)
	}
	return x.Else.Run(env)
}

// Try runs Cond, keeping its edits if it succeeds and running Then;
// rolling them back and running Else only if Cond failed.
type Try struct {
	Cond, Then, Else Program
}

func (x Try) Run(env *Env) Outcome {
	mark := env.Trail.Mark()
	if x.Cond.Run(env) == Success {
		env.Trail.Truncate(mark)
		return x.Then.Run(env)
	}
	if err := env.Trail.Undo(env.Host, mark); err != nil {
		return Failure
	}
	return x.Else.Run(env)
}
