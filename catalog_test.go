package funcrouter

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSimpleCatalog_Lookup(t *testing.T) {
	t.Run("resolves a registered handler", func(t *testing.T) {
		cat := NewCatalog()
		h := HandlerFunc("echo", func(ctx context.Context, in any) (any, error) {
			return in, nil
		})
		if err := cat.Register(h); err != nil {
			t.Fatalf("register: %v", err)
		}

		if got := cat.Lookup("echo"); got != h {
			t.Errorf("Lookup = %v, want the registered handler", got)
		}
	})

	t.Run("returns nil for unknown names", func(t *testing.T) {
		cat := NewCatalog()
		if got := cat.Lookup("missing"); got != nil {
			t.Errorf("Lookup = %v, want nil", got)
		}
	})

	t.Run("returns nil for blank names", func(t *testing.T) {
		cat := NewCatalog()
		if got := cat.Lookup("  "); got != nil {
			t.Errorf("Lookup = %v, want nil", got)
		}
	})

	t.Run("rejects blank registration", func(t *testing.T) {
		cat := NewCatalog()
		err := cat.Register(HandlerFunc("", func(ctx context.Context, in any) (any, error) {
			return in, nil
		}))
		if !errors.Is(err, ErrBlankName) {
			t.Errorf("error = %v, want ErrBlankName", err)
		}
	})
}

func TestSimpleCatalog_Composite(t *testing.T) {
	newPipelineCatalog := func() *SimpleCatalog {
		cat := NewCatalog()
		_ = cat.Register(HandlerFunc("trim", func(ctx context.Context, in any) (any, error) {
			return strings.TrimSpace(in.(string)), nil
		}))
		_ = cat.Register(HandlerFunc("upper", func(ctx context.Context, in any) (any, error) {
			return strings.ToUpper(in.(string)), nil
		}))
		return cat
	}

	t.Run("pipe-delimited name composes left to right", func(t *testing.T) {
		cat := newPipelineCatalog()
		h := cat.Lookup("trim|upper")
		if h == nil {
			t.Fatal("composite lookup returned nil")
		}

		out, err := h.Apply(context.Background(), "  hi  ")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if out != "HI" {
			t.Errorf("out = %v, want %q", out, "HI")
		}
		if h.Name() != "trim|upper" {
			t.Errorf("Name = %q, want the composite name", h.Name())
		}
	})

	t.Run("comma delimiter works the same", func(t *testing.T) {
		cat := newPipelineCatalog()
		h := cat.Lookup("trim,upper")
		if h == nil {
			t.Fatal("composite lookup returned nil")
		}

		out, err := h.Apply(context.Background(), " ok ")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if out != "OK" {
			t.Errorf("out = %v, want %q", out, "OK")
		}
	})

	t.Run("synthesized pipeline is cached", func(t *testing.T) {
		cat := newPipelineCatalog()
		first := cat.Lookup("trim|upper")
		second := cat.Lookup("trim|upper")
		if first != second {
			t.Error("composite lookup synthesized a new handler on every call")
		}
	})

	t.Run("unknown stage fails the whole composite", func(t *testing.T) {
		cat := newPipelineCatalog()
		if got := cat.Lookup("trim|missing"); got != nil {
			t.Errorf("Lookup = %v, want nil", got)
		}
	})

	t.Run("stage error stops the pipeline", func(t *testing.T) {
		cat := newPipelineCatalog()
		boom := errors.New("boom")
		_ = cat.Register(HandlerFunc("fail", func(ctx context.Context, in any) (any, error) {
			return nil, boom
		}))
		upperCalls := 0
		_ = cat.Register(HandlerFunc("count", func(ctx context.Context, in any) (any, error) {
			upperCalls++
			return in, nil
		}))

		_, err := cat.Lookup("fail|count").Apply(context.Background(), "x")
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want %v", err, boom)
		}
		if upperCalls != 0 {
			t.Errorf("later stage ran %d times after a failure", upperCalls)
		}
	})

	t.Run("metadata comes from the first stage", func(t *testing.T) {
		cat := newPipelineCatalog()
		_ = cat.Register(HandlerFunc("agg", func(ctx context.Context, in any) (any, error) {
			return in, nil
		}, WithStreamInput()))
		_ = cat.Register(HandlerFunc("gen", func(ctx context.Context, in any) (any, error) {
			return "v", nil
		}, WithSupplier()))

		if h := cat.Lookup("agg|upper"); !h.StreamInput() {
			t.Error("composite starting with a stream-input stage should declare stream input")
		}
		if h := cat.Lookup("gen|upper"); !h.Supplier() {
			t.Error("composite starting with a supplier should be a supplier")
		}
		if h := cat.Lookup("trim|upper"); h.StreamInput() || h.Supplier() {
			t.Error("plain composite should carry no stream or supplier metadata")
		}
	})
}

func TestSimpleCatalog_ContentType(t *testing.T) {
	t.Run("prefers the typed entry", func(t *testing.T) {
		cat := NewCatalog()
		plain := HandlerFunc("convert", func(ctx context.Context, in any) (any, error) {
			return "plain", nil
		})
		typed := HandlerFunc("convert", func(ctx context.Context, in any) (any, error) {
			return "json", nil
		}, WithContentType("application/json"))
		_ = cat.Register(plain)
		_ = cat.Register(typed)

		if got := cat.LookupWithContentType("convert", "application/json"); got != typed {
			t.Errorf("LookupWithContentType = %v, want the typed handler", got)
		}
	})

	t.Run("falls back to the untyped entry", func(t *testing.T) {
		cat := NewCatalog()
		plain := HandlerFunc("convert", func(ctx context.Context, in any) (any, error) {
			return "plain", nil
		})
		_ = cat.Register(plain)

		if got := cat.LookupWithContentType("convert", "text/plain"); got != plain {
			t.Errorf("LookupWithContentType = %v, want the untyped handler", got)
		}
	})

	t.Run("typed entry does not shadow the plain name", func(t *testing.T) {
		cat := NewCatalog()
		_ = cat.Register(HandlerFunc("convert", func(ctx context.Context, in any) (any, error) {
			return "json", nil
		}, WithContentType("application/json")))

		if got := cat.Lookup("convert"); got != nil {
			t.Errorf("Lookup = %v, want nil for a name only registered with a content type", got)
		}
	})
}
