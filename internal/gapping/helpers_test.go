package gapping

import (
	"testing"

	"github.com/pbaille/clubgap/internal/testutil"
)

func newGenerator(t *testing.T) *testutil.SnapshotGenerator {
	t.Helper()
	g := testutil.NewSnapshotGenerator()
	t.Logf("generator seed %d", g.Seed())
	return g
}
