// Package notify defines the sink the store publishes domain events to.
package notify

// Topics published by the store. One caller action may publish more than
// one topic when it represents more than one fact (awarding a badge is both
// a badge fact and a rank fact about the recipient).
const (
	TopicIssuerNew   = "issuer.new"
	TopicBadgeNew    = "badge.new"
	TopicBadgeAward  = "badge.award"
	TopicRankAdvance = "person.rank.advance"
	TopicLogin       = "person.login"
)

// Sink receives a topic and a structured payload for every mutation the
// domain considers externally significant. Publication is synchronous and a
// sink error propagates to the store's caller unmodified; the mutation
// itself is already committed by then.
type Sink interface {
	Publish(topic string, msg map[string]any) error
}

// Func adapts a plain function to the Sink interface.
type Func func(topic string, msg map[string]any) error

// Publish implements Sink.
func (f Func) Publish(topic string, msg map[string]any) error {
	return f(topic, msg)
}
