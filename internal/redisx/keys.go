package redisx

import "time"

const (
	// Cart snapshot per session: cart:{session_id} -> JSON array of items
	KeyCart = "cart:%s"

	// Checkout details per session: checkout:{session_id} (hash, one field per form field)
	KeyCheckout = "checkout:%s"

	// Submit lock per session (the "loading" flag): submit:lock:{session_id} -> order_id
	KeySubmitLock = "submit:lock:%s"

	// Cache order status: order_status:{order_id} -> {"status":"...","payment_status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing in the worker: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCart       = 7 * 24 * time.Hour
	TTLCheckout   = 7 * 24 * time.Hour
	TTLSubmitLock = 30 * time.Second
	TTLStatus     = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
