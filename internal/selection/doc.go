// Package selection holds the user's current filter criteria and pin state.
//
// A State is created from explicit Defaults and the Domain the catalog
// offers. Every setter validates against the Domain and leaves the State
// unchanged on failure. Changing a criterion clears any pin; setting a
// criterion to the value it already has does not.
//
// Pin states:
//
//	PinNone      -> PinConnector | PinTool
//	PinConnector -> PinNone | PinTool
//	PinTool      -> PinNone | PinConnector
//
// Pinning one side replaces a pin on the other side. Reopen clears a pin
// only when the reopened side is the pinned one.
package selection
