package searchplan

import "strconv"

// Dump renders a Plan as a stable, human-readable diagnostic string: one
// line per operation, tag followed by its operand indices. The format is
// not part of any wire contract; it exists for test failure messages and
// command-line diagnostics.
func (p Plan) Dump() string {
	out := make([]byte, 0, len(p.Ops)*12)
	for _, op := range p.Ops {
		out = append(out, byte(op.Tag))
		out = append(out, ' ')
		if op.IsNodeOp {
			out = append(out, 'n')
			out = appendInt(out, op.NodeIndex)
			if op.Via >= 0 {
				out = append(out, " via e"...)
				out = appendInt(out, op.Via)
			}
		} else {
			out = append(out, 'e')
			out = appendInt(out, op.EdgeIndex)
			if op.From >= 0 {
				out = append(out, " from n"...)
				out = appendInt(out, op.From)
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func appendInt(b []byte, v int) []byte {
	return append(b, strconv.Itoa(v)...)
}
