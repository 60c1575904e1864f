package core

// Publisher fans lifecycle transitions out to dashboard observers. The
// engine publishes fire-and-forget; a slow or absent bus never blocks an
// admission decision.
type Publisher interface {
	Publish(subject string, payload interface{})
}

// Subjects emitted by the engine.
const (
	EventSessionOpened    = "hotspot.session.opened"
	EventSessionPaused    = "hotspot.session.paused"
	EventSessionResumed   = "hotspot.session.resumed"
	EventSessionExpired   = "hotspot.session.expired"
	EventSessionClosed    = "hotspot.session.closed"
	EventVoucherRedeemed  = "hotspot.voucher.redeemed"
	EventVoucherGenerated = "hotspot.voucher.generated"
	EventVoucherExpired   = "hotspot.voucher.expired"
)

// NopPublisher drops everything; used when no bus is configured and in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(subject string, payload interface{}) {}
