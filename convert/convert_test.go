package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gp2-lang/gp2/convert"
	"github.com/gp2-lang/gp2/host"
	"github.com/gp2-lang/gp2/label"
)

func buildTriangle(t *testing.T) *host.Engine {
	t.Helper()
	store := label.NewStore()
	e := host.NewEngine(store)
	a := e.AddNode(false, label.Blank)
	b := e.AddNode(false, label.Blank)
	c := e.AddNode(false, label.Blank)
	e.AddEdge(label.Blank, a, b, false)
	e.AddEdge(label.Blank, b, c, false)
	e.AddEdge(label.Blank, c, a, false)
	return e
}

func TestToDominikbraunCounts(t *testing.T) {
	e := buildTriangle(t)
	g, err := convert.ToDominikbraun(e)
	require.NoError(t, err)
	order, err := g.Order()
	require.NoError(t, err)
	size, err := g.Size()
	require.NoError(t, err)
	require.Equal(t, e.NodeCount(), order)
	require.Equal(t, e.EdgeCount(), size)
}

func TestToGonumCounts(t *testing.T) {
	e := buildTriangle(t)
	g, err := convert.ToGonum(e)
	require.NoError(t, err)
	require.Equal(t, e.NodeCount(), g.Nodes().Len())
	require.Equal(t, e.EdgeCount(), g.Edges().Len())
}

func TestToGographCounts(t *testing.T) {
	e := buildTriangle(t)
	g, err := convert.ToGograph(e)
	require.NoError(t, err)
	require.Equal(t, e.NodeCount(), len(g.GetAllVertices()))
}

// TestCrossLibraryAgreement exercises all three conversions against the
// same host graph and checks their node totals agree with each other,
// independent of host.Engine's own counting -- a regression in one
// adapter's Add* loop would surface as a disagreement here even if its own
// counting accessor happened to be wrong too.
func TestCrossLibraryAgreement(t *testing.T) {
	e := buildTriangle(t)

	db, err := convert.ToDominikbraun(e)
	require.NoError(t, err)
	dbOrder, err := db.Order()
	require.NoError(t, err)

	gn, err := convert.ToGonum(e)
	require.NoError(t, err)

	gg, err := convert.ToGograph(e)
	require.NoError(t, err)

	require.Equal(t, dbOrder, gn.Nodes().Len())
	require.Equal(t, gn.Nodes().Len(), len(gg.GetAllVertices()))
}
