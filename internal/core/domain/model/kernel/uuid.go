package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID, which is
// what a struct field holds when no constructor ran.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid. Orders are keyed by
// it across the queue, the store, the HTTP surface and the event stream.
//
// The zero value is invalid; build one with NewUUID, UUIDFromString or
// UUIDFromBytes. Values are immutable and safe to share between goroutines.
//
// Example usage:
//
//	// checkout hands over a new order
//	id := kernel.NewUUID()
//
//	// an operator addresses an existing one
//	id, err := kernel.UUIDFromString(c.Param("orderId"))
//	if err != nil {
//	    return err
//	}
//
//	// a row comes back from PostgreSQL
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. It never returns the nil UUID.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Standard, payload, now)
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any textual form accepted by uuid.Parse: canonical,
// braced or urn-prefixed. The nil UUID is rejected with
// ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return fromGoogle(id)
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored by the
// database adapters and sent by the generated HTTP server types. Any other
// length is an error, and so is the nil UUID.
//
// Example:
//
//	// openapi_types.UUID is a [16]byte
//	id, err := kernel.UUIDFromBytes(orderId[:])
//	if err != nil {
//	    return s.badRequest(ctx, err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return fromGoogle(id)
}

func fromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form in
// lower case. Logs, Kafka keys and JSON messages all use it.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, not a slice. Use id.Bytes()[:] when
// a []byte is needed.
//
// Example:
//
//	dto := OrderDTO{ID: o.ID().Bytes()}
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
//
// Example:
//
//	if !event.OrderID.IsEqual(o.ID()) {
//	    continue
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID. Aggregates call
// it when they are built or restored so that an unset id never reaches the
// store.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
