package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/internal/app"
	_ "go.trai.ch/rt/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the type used in Dep[T]. Every port lives in the shared ports package,
	// so the static check cannot tell the nodes apart.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestGraftResolvesComponents builds the full graph the way main does.
func TestGraftResolvesComponents(t *testing.T) {
	t.Setenv("RT_STATE_DIR", t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	if err != nil {
		t.Fatalf("graph failed to resolve: %v", err)
	}
	if components.App == nil || components.Logger == nil {
		t.Fatal("components are incomplete")
	}
}
