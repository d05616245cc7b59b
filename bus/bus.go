// Package bus is a small in-process pub/sub message bus. Topics are token
// paths, subscriptions may use MQTT-style wildcards, and retained messages
// replay to late subscribers.
package bus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Wildcard tokens. "+" matches exactly one level, "#" matches the rest of
// the path (including zero levels) and must be the last token.
const (
	WildOne = "+"
	WildAll = "#"
)

// Topic is a sequence of comparable tokens, usually strings.
type Topic []any

// T builds a Topic, panicking on tokens that cannot be used as map keys.
// Only strings and ints are accepted; anything else is a programming error.
func T(tokens ...any) Topic {
	for _, tok := range tokens {
		switch tok.(type) {
		case string, int:
		default:
			panic("bus: topic token must be string or int")
		}
	}
	return Topic(tokens)
}

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// node is one level of the subscription/retained trie. Wildcard tokens are
// ordinary children keyed by their literal value.
type node struct {
	children map[any]*node
	subs     []*Subscription
	retained *Message
}

type Bus struct {
	mu       sync.RWMutex
	root     *node
	qLen     int
	replySeq uint32
}

// NewBus creates a bus whose subscriptions buffer queueLen messages each.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{root: &node{}, qLen: queueLen}
}

// NewMessage is a convenience constructor shared by Bus and Connection.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (b *Bus) addSubscription(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range topic {
		if n.children == nil {
			n.children = make(map[any]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	// Replay retained messages matching the new pattern.
	var replay []*Message
	b.matchRetained(b.root, topic, 0, &replay)
	for _, m := range replay {
		deliver(sub, m)
	}
}

// matchRetained collects retained messages under the concrete trie that the
// pattern (possibly containing wildcards) covers.
func (b *Bus) matchRetained(n *node, pat Topic, idx int, out *[]*Message) {
	if n == nil {
		return
	}
	if idx == len(pat) {
		if n.retained != nil {
			*out = append(*out, n.retained)
		}
		return
	}
	switch pat[idx] {
	case WildAll:
		b.allRetained(n, out)
	case WildOne:
		for _, child := range n.children {
			b.matchRetained(child, pat, idx+1, out)
		}
	default:
		b.matchRetained(n.children[pat[idx]], pat, idx+1, out)
	}
}

func (b *Bus) allRetained(n *node, out *[]*Message) {
	if n.retained != nil {
		*out = append(*out, n.retained)
	}
	for _, child := range n.children {
		b.allRetained(child, out)
	}
}

// Publish delivers a message to every matching subscriber and, if the
// message is retained, stores it at its exact topic (nil payload clears).
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fanout(b.root, msg, 0)

	if !msg.Retained {
		return
	}
	n := b.root
	for _, tok := range msg.Topic {
		if n.children == nil {
			n.children = make(map[any]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	if msg.Payload == nil {
		n.retained = nil
	} else {
		n.retained = msg
	}
}

// fanout walks the pattern trie against a concrete topic. A "#" child
// matches here and everything below, so it is checked at every level.
func (b *Bus) fanout(n *node, msg *Message, idx int) {
	if n == nil {
		return
	}
	if all, ok := n.children[WildAll]; ok {
		for _, sub := range all.subs {
			deliver(sub, msg)
		}
	}
	if idx == len(msg.Topic) {
		for _, sub := range n.subs {
			deliver(sub, msg)
		}
		return
	}
	if n.children == nil {
		return
	}
	b.fanout(n.children[msg.Topic[idx]], msg, idx+1)
	b.fanout(n.children[WildOne], msg, idx+1)
}

// deliver pushes to a subscription, dropping its oldest message when full.
func deliver(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

func (b *Bus) unsubscribe(topic Topic, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var stack []*node
	for _, t := range topic {
		if n.children == nil {
			return
		}
		child, ok := n.children[t]
		if !ok {
			return
		}
		stack = append(stack, n)
		n = child
	}

	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}

	// Prune empty nodes.
	for i := len(topic) - 1; i >= 0; i-- {
		parent := stack[i]
		key := topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}

type Connection struct {
	bus  *Bus
	subs []*Subscription
	mu   sync.Mutex
	id   string
}

// NewConnection creates a connection bound to this bus. The id namespaces
// reply topics, so give each client a distinct one.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.bus.addSubscription(topic, sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub.topic, sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions owned by this connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub.topic, sub)
		close(sub.ch)
	}
}

// Request publishes msg with a fresh ReplyTo topic and returns a
// subscription on that topic. The caller owns the subscription.
func (c *Connection) Request(msg *Message) *Subscription {
	seq := atomic.AddUint32(&c.bus.replySeq, 1)
	msg.ReplyTo = Topic{"reply", c.id, int(seq)}
	sub := c.Subscribe(msg.ReplyTo)
	c.Publish(msg)
	return sub
}

// RequestWait performs a request and blocks for the first reply or ctx.
func (c *Connection) RequestWait(ctx context.Context, msg *Message) (*Message, error) {
	sub := c.Request(msg)
	defer c.Unsubscribe(sub)

	select {
	case reply, ok := <-sub.Channel():
		if !ok {
			return nil, errors.New("bus: reply channel closed")
		}
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reply publishes a response on the request's ReplyTo topic. Requests
// without a ReplyTo are dropped.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if len(req.ReplyTo) == 0 {
		return
	}
	c.Publish(c.NewMessage(req.ReplyTo, payload, retained))
}
