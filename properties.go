package funcrouter

import "sync/atomic"

// Properties is the routing configuration consulted on every decision.
// Both fields are optional; a blank value means "not configured".
type Properties struct {
	// Definition is the default handler name. It may be a composite
	// (delimited) name, which the catalog interprets.
	Definition string

	// RoutingExpression is evaluated against the input to produce a
	// handler name.
	RoutingExpression string
}

// PropertiesSource supplies the current routing properties. The router
// calls Routing once per decision and never caches the result, so a
// source backed by reloadable configuration takes effect immediately.
type PropertiesSource interface {
	Routing() Properties
}

// StaticProperties returns a source that always yields p.
func StaticProperties(p Properties) PropertiesSource {
	return staticProperties{p: p}
}

type staticProperties struct {
	p Properties
}

func (s staticProperties) Routing() Properties { return s.p }

// DynamicProperties is a PropertiesSource whose snapshot can be swapped
// atomically. Store publishes a complete new snapshot; concurrent
// routing calls see either the old or the new one, never a mix.
type DynamicProperties struct {
	p atomic.Pointer[Properties]
}

// NewDynamicProperties returns a DynamicProperties holding p.
func NewDynamicProperties(p Properties) *DynamicProperties {
	d := &DynamicProperties{}
	d.Store(p)
	return d
}

// Store replaces the current snapshot.
func (d *DynamicProperties) Store(p Properties) {
	d.p.Store(&p)
}

// Routing returns the current snapshot.
func (d *DynamicProperties) Routing() Properties {
	if v := d.p.Load(); v != nil {
		return *v
	}
	return Properties{}
}
