package entity

import "time"

// GatewayKind classifies how the data behind an entity can be reached.
type GatewayKind string

const (
	GatewayOpen       GatewayKind = "open"
	GatewayRegistered GatewayKind = "registered"
	GatewayControlled GatewayKind = "controlled"
	GatewayClosed     GatewayKind = "closed"
)

// LinkKind classifies the link a gateway points at.
type LinkKind string

const (
	LinkDirect        LinkKind = "direct"
	LinkApproximate   LinkKind = "approximate"
	LinkInformational LinkKind = "informational"
	LinkMailTo        LinkKind = "mailto"
)

// ClosedStatus is the reason a closed gateway is closed.
type ClosedStatus string

const (
	ClosedIndefinitely ClosedStatus = "indefinitely_closed"
	ClosedTemporarily  ClosedStatus = "temporarily_closed"
	ClosedMoved        ClosedStatus = "moved"
)

// GatewayLink points at the location data can be obtained from.
type GatewayLink struct {
	URL          string   `json:"url"`
	Kind         LinkKind `json:"kind"`
	Instructions string   `json:"instructions,omitempty"`
}

// NamedGateway describes one named access route for an entity. Open,
// registered and controlled gateways carry a link; closed gateways carry a
// status and optionally when they reopen.
type NamedGateway struct {
	Name        string       `json:"name"`
	Kind        GatewayKind  `json:"kind"`
	Link        *GatewayLink `json:"link,omitempty"`
	Status      ClosedStatus `json:"status,omitempty"`
	AvailableAt *time.Time   `json:"available_at,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Gateways is the named-gateway map attached to list and lookup responses.
// This service passes it through unpopulated unless a data custodian wires
// gateway descriptors in.
type Gateways map[string]NamedGateway
