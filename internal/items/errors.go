package items

import "errors"

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrInventoryFull   = errors.New("inventory full")
	ErrEmptySlot       = errors.New("inventory slot is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNotUsable       = errors.New("item cannot be used")
	ErrItemNotInSlot   = errors.New("item not in slot")
)
