package effectchain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnknownEffect is returned when a node references an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

type nodeRuntime struct {
	params  Params
	runtime Runtime
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for configuration events. Processing
// never logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// Chain runs a serial list of effect runtimes over a block in place.
//
// Load, SetContext and Clear are configuration calls and must not run
// concurrently with Process or Reset.
type Chain struct {
	ctx      Context
	registry *Registry
	log      logrus.FieldLogger

	order []*nodeRuntime
	nodes map[string]*nodeRuntime
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry, opts ...Option) *Chain {
	c := &Chain{
		ctx:      ctx,
		registry: registry,
		log:      logrus.StandardLogger(),
		nodes:    make(map[string]*nodeRuntime),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Context returns the current chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// SetContext updates the chain context (e.g., after a sample rate change)
// and reconfigures every node with its current parameters.
func (c *Chain) SetContext(ctx Context) error {
	c.ctx = ctx

	for _, n := range c.order {
		err := n.runtime.Configure(ctx, n.params)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", n.params.ID, n.params.Type, err)
		}
	}

	c.log.WithFields(logrus.Fields{
		"sample_rate": ctx.SampleRate,
		"block_size":  ctx.BlockSize,
		"nodes":       len(c.order),
	}).Debug("chain context updated")

	return nil
}

// Load parses a JSON layout and synchronizes node runtimes with it. Nodes
// whose ID and type are unchanged keep their runtime and its state; new or
// retyped nodes get a fresh runtime. An empty string clears the chain.
//
// On error the previous node order and every node's params, including its
// bypass flag, stay active. Runtimes configured before the failing node keep
// their new settings.
func (c *Chain) Load(jsonLayout string) error {
	layout, err := parseLayout(jsonLayout)
	if err != nil {
		return err
	}

	order := make([]*nodeRuntime, 0, len(layout))
	nodes := make(map[string]*nodeRuntime, len(layout))

	for _, p := range layout {
		n := c.nodes[p.ID]
		if n == nil || n.params.Type != p.Type {
			rt, err := c.newRuntime(p.Type)
			if err != nil {
				c.log.WithFields(logrus.Fields{"node": p.ID, "type": p.Type}).WithError(err).Warn("cannot create node")

				return fmt.Errorf("effectchain: node %q: %w", p.ID, err)
			}

			n = &nodeRuntime{runtime: rt}
		}

		err := n.runtime.Configure(c.ctx, p)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", p.ID, p.Type, err)
		}

		order = append(order, n)
		nodes[p.ID] = n

		c.log.WithFields(logrus.Fields{
			"node":     p.ID,
			"type":     p.Type,
			"bypassed": p.Bypassed,
		}).Debug("node configured")
	}

	for i, n := range order {
		n.params = layout[i]
	}

	c.order = order
	c.nodes = nodes

	c.log.WithField("nodes", len(order)).Info("chain loaded")

	return nil
}

// Process applies every non-bypassed node to block in place, in layout
// order. An empty chain leaves block untouched.
func (c *Chain) Process(block []float64) {
	if len(block) == 0 {
		return
	}

	for _, n := range c.order {
		if n.params.Bypassed {
			continue
		}

		n.runtime.Process(block)
	}
}

// Reset clears the processing state of every node. The layout is kept.
func (c *Chain) Reset() {
	for _, n := range c.order {
		n.runtime.Reset()
	}
}

// Clear removes all nodes.
func (c *Chain) Clear() {
	c.order = nil
	c.nodes = make(map[string]*nodeRuntime)
}

// Len returns the number of nodes in the chain.
func (c *Chain) Len() int {
	return len(c.order)
}

// NodeIDs returns the node IDs in processing order.
func (c *Chain) NodeIDs() []string {
	ids := make([]string, len(c.order))
	for i, n := range c.order {
		ids[i] = n.params.ID
	}

	return ids
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	n := c.nodes[nodeID]
	if n == nil {
		return nil
	}

	return n.runtime
}

func (c *Chain) newRuntime(effectType string) (Runtime, error) {
	factory := c.registry.Lookup(effectType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, effectType)
	}

	return factory(c.ctx)
}
