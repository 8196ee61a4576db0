package dock

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilNode is returned when a nil *Node is passed to an attach operation.
	ErrNilNode = errors.New("nil node")

	// ErrInvalidID is returned when a node is registered with a reserved or
	// negative ID. Panel IDs must be positive; RootID belongs to the root.
	ErrInvalidID = errors.New("invalid node ID")

	// ErrDuplicateID is returned when a node ID is already registered.
	ErrDuplicateID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an ID does not name a live node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrAlreadyDocked is returned when docking a node that is not floating.
	ErrAlreadyDocked = errors.New("node is already docked")

	// ErrNotDocked is returned when an operation needs a docked node.
	ErrNotDocked = errors.New("node is not docked")

	// ErrSideForbidden is returned when the target forbids children on the
	// requested side, or when no side was given.
	ErrSideForbidden = errors.New("dock side not allowed")

	// ErrNotUndockable is returned for nodes styled NoUndock.
	ErrNotUndockable = errors.New("node cannot be undocked")

	// ErrNotClosable is returned for nodes styled NoClose.
	ErrNotClosable = errors.New("node cannot be closed")

	// ErrWouldCycle is returned when a node would be docked inside its own
	// subtree or group.
	ErrWouldCycle = errors.New("operation would create a cycle")

	// ErrRootNode is returned when an operation cannot apply to the family root.
	ErrRootNode = errors.New("operation not allowed on the root node")

	// ErrNotMember is returned when a node is not a member of the named group.
	ErrNotMember = errors.New("node is not a group member")

	// ErrGrouped is returned when a tree operation is asked of a node that
	// currently lives inside another node's group.
	ErrGrouped = errors.New("node is a group member")
)

// ID identifies a node. IDs are stable across sessions and are what the
// persistence layer writes out.
type ID int

const (
	// RootID is the ID of the family root.
	RootID ID = 0

	// None marks an absent link.
	None ID = -1
)

// Side is the edge of a parent a child is docked against.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// Sides lists the four dock sides in detector order.
var Sides = [...]Side{SideLeft, SideTop, SideRight, SideBottom}

var sideNames = map[Side]string{
	SideNone:   "none",
	SideLeft:   "left",
	SideRight:  "right",
	SideTop:    "top",
	SideBottom: "bottom",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide converts a side name back to a Side.
func ParseSide(name string) (Side, error) {
	for s, n := range sideNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return SideNone, fmt.Errorf("unknown dock side %q", name)
}

// Horizontal reports whether the side splits along the x axis.
func (s Side) Horizontal() bool { return s == SideLeft || s == SideRight }

// Style is the persisted bitset of dock flags. The bit layout is stable
// because saved layouts store it verbatim.
type Style uint32

const (
	DockedLeft   Style = 0x0001
	DockedRight  Style = 0x0002
	DockedTop    Style = 0x0004
	DockedBottom Style = 0x0008

	NoDockChildLeft   Style = 0x0010
	NoDockChildRight  Style = 0x0020
	NoDockChildTop    Style = 0x0040
	NoDockChildBottom Style = 0x0080

	NoResize    Style = 0x0100
	NoCaption   Style = 0x0200
	NoClose     Style = 0x0400
	NoUndock    Style = 0x0800
	ClientEdge  Style = 0x1000
	FixedResize Style = 0x2000 // children keep absolute sizes
	Container   Style = 0x4000 // docked as a tab of another node's group
	Tabbed      Style = 0x8000 // accepts tab merges while still plain

	DockedLeftmost   Style = 0x10000
	DockedRightmost  Style = 0x20000
	DockedTopmost    Style = 0x40000
	DockedBottommost Style = 0x80000

	sideMask  Style = 0x000F
	outerMask Style = 0xF0000
)

// Side returns the docked side encoded in s.
func (s Style) Side() Side {
	switch s & sideMask {
	case DockedLeft:
		return SideLeft
	case DockedRight:
		return SideRight
	case DockedTop:
		return SideTop
	case DockedBottom:
		return SideBottom
	}
	return SideNone
}

// OuterSide returns the outer docking request encoded in s.
func (s Style) OuterSide() Side {
	return ((s & outerMask) >> 16).Side()
}

// WithSide replaces the side bits of s.
func (s Style) WithSide(side Side) Style {
	return s&^sideMask | side.Bit()
}

// Forbids reports whether s forbids docking children on side.
func (s Style) Forbids(side Side) bool {
	return side == SideNone || s&(side.Bit()<<4) != 0
}

// Has reports whether every bit of flag is set.
func (s Style) Has(flag Style) bool { return s&flag == flag }

// Bit returns the style bit that docks a node on side.
func (side Side) Bit() Style {
	switch side {
	case SideLeft:
		return DockedLeft
	case SideRight:
		return DockedRight
	case SideTop:
		return DockedTop
	case SideBottom:
		return DockedBottom
	}
	return 0
}

// OuterBit returns the style bit that requests outer docking on side.
func (side Side) OuterBit() Style { return side.Bit() << 16 }
