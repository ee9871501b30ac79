package control

// Procedure is a named, reusable Program: original_source/Compiler/ast.h's
// PROCEDURE_CALL lets a GP2 source file declare a local command block once
// and invoke it by name from several call sites. Grounded on genRule.c's
// "compile once, call many" discipline for named rules, applied here to
// named control programs instead of named rule bodies.
type Procedure struct {
	Name string
	Body Program
}

// ProcCall invokes a Procedure previously registered in Env.Procs by name.
// Program.Run's signature carries no error channel (spec.md §7's policy:
// match/apply/control outcomes are plain booleans), so an unregistered name
// -- a caller wiring bug, never a normal control outcome -- is reported by
// failing rather than by a recoverable error return.
type ProcCall struct {
	Name string
}

func (c ProcCall) Run(env *Env) Outcome {
	p, ok := env.Procs[c.Name]
	if !ok {
		return Failure
	}
	return p.Run(env)
}

// Register adds a named procedure to env, making it callable via ProcCall.
func (env *Env) Register(proc Procedure) {
	env.Procs[proc.Name] = proc.Body
}
