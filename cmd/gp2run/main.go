// Command gp2run is the minimal top-level executable tying compiled rule
// procedures to a control program and a host graph, grounded on
// original_source/Compiler/runtime.c's driver shape (build a fixed host
// graph, run the compiled program, print the result, exit) and the
// teacher's examples/*.go entrypoint style (a short scenario comment, a
// main building a graph then invoking one algorithm).
//
// Exit codes, per spec.md §6: 0 on a successful run (the program's control
// outcome is success), 1 on a program-level failure, 2 on an internal
// error (e.g. rule compilation failed).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gp2-lang/gp2"
	"github.com/gp2-lang/gp2/applier"
	"github.com/gp2-lang/gp2/control"
	"github.com/gp2-lang/gp2/convert"
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
	"github.com/gp2-lang/gp2/matcher"
	"github.com/gp2-lang/gp2/rule"
	"github.com/gp2-lang/gp2/searchplan"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gp2run", flag.ContinueOnError)
	dump := fs.String("dump-graph", "", "after running, export the host graph via one of: dominikbraun, gonum, gograph")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	eng := gp2.NewEngine()
	buildRuntimeCHostGraph(eng.Host)

	prog, err := buildDeleteEdgeProgram()
	if err != nil {
		log.Printf("gp2run: rule compilation failed: %v", err)
		return 2
	}

	outcome := eng.Run(prog)
	log.Printf("gp2run: control program finished, outcome=%v", outcome)

	if *dump != "" {
		if err := dumpGraph(eng, *dump); err != nil {
			log.Printf("gp2run: -dump-graph=%s: %v", *dump, err)
			return 2
		}
	}

	if outcome == control.Success {
		return 0
	}
	return 1
}

// buildRuntimeCHostGraph recreates runtime.c's fixed demo host: a 5-node
// path 1->2->3->4->5 plus a fifth edge 3->5, with node 3 flagged as root --
// the exact graph the original driver builds before its first match call.
func buildRuntimeCHostGraph(h *host.Engine) {
	n1 := h.AddNode(false, label.Blank)
	n2 := h.AddNode(false, label.Blank)
	n3 := h.AddNode(true, label.Blank)
	n4 := h.AddNode(false, label.Blank)
	n5 := h.AddNode(false, label.Blank)
	h.AddEdge(label.Blank, n1, n2, false)
	h.AddEdge(label.Blank, n2, n3, false)
	h.AddEdge(label.Blank, n3, n4, false)
	h.AddEdge(label.Blank, n4, n5, false)
	h.AddEdge(label.Blank, n3, n5, false)
}

func dumpGraph(eng *gp2.Engine, which string) error {
	switch which {
	case "dominikbraun":
		g, err := convert.ToDominikbraun(eng.Host)
		if err != nil {
			return err
		}
		order, _ := g.Order()
		size, _ := g.Size()
		fmt.Printf("dominikbraun/graph: %d nodes, %d edges\n", order, size)
	case "gonum":
		g, err := convert.ToGonum(eng.Host)
		if err != nil {
			return err
		}
		fmt.Printf("gonum/graph/simple: %d nodes, %d edges\n", g.Nodes().Len(), g.Edges().Len())
	case "gograph":
		g, err := convert.ToGograph(eng.Host)
		if err != nil {
			return err
		}
		fmt.Printf("hmdsefi/gograph: %d vertices\n", len(g.GetAllVertices()))
	default:
		return fmt.Errorf("unknown -dump-graph value %q", which)
	}
	return nil
}

// buildDeleteEdgeProgram compiles a one-rule program, "deleteEdge": L is
// two nodes joined by an edge, R is the same two nodes with the edge
// removed (spec.md §8 scenario 2), wrapped in try deleteEdge then skip else
// skip (scenario 6) so the run succeeds whether or not the host still has
// a matching edge.
func buildDeleteEdgeProgram() (control.Program, error) {
	b := rule.NewBuilder("deleteEdge")
	a := b.AddLNode("a", label.MarkNone, nil, false)
	c := b.AddLNode("c", label.MarkNone, nil, false)
	b.AddLEdge(label.MarkNone, nil, a, c, false)
	ra := b.AddRNode("a", label.MarkNone, nil, false)
	rc := b.AddRNode("c", label.MarkNone, nil, false)
	b.Keep(a, ra)
	b.Keep(c, rc)

	rl, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("gp2run: %w", err)
	}

	plan := searchplan.Generate(rl.L)
	call := control.RuleCall{
		Match: matcher.Compile(rl, plan),
		Apply: applier.Compile(rl),
	}

	return control.Try{Cond: call, Then: control.Skip{}, Else: control.Skip{}}, nil
}
