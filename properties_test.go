package funcrouter

import "testing"

func TestPropertiesSources(t *testing.T) {
	t.Run("static source always yields the same snapshot", func(t *testing.T) {
		src := StaticProperties(Properties{Definition: "d"})
		if src.Routing().Definition != "d" {
			t.Errorf("Definition = %q, want %q", src.Routing().Definition, "d")
		}
	})

	t.Run("dynamic source swaps complete snapshots", func(t *testing.T) {
		src := NewDynamicProperties(Properties{Definition: "a", RoutingExpression: "x"})
		src.Store(Properties{Definition: "b"})

		got := src.Routing()
		if got.Definition != "b" {
			t.Errorf("Definition = %q, want %q", got.Definition, "b")
		}
		if got.RoutingExpression != "" {
			t.Errorf("RoutingExpression = %q, want it cleared by the new snapshot", got.RoutingExpression)
		}
	})

	t.Run("zero dynamic source yields empty properties", func(t *testing.T) {
		var src DynamicProperties
		if got := src.Routing(); got != (Properties{}) {
			t.Errorf("Routing = %+v, want zero", got)
		}
	})
}
