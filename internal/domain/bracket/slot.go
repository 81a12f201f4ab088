package bracket

// SlotKind tags what currently occupies one side of a fixture.
type SlotKind uint8

const (
	// SlotPending waits on an earlier result or a final ranking.
	SlotPending SlotKind = iota
	SlotAssigned
	SlotBye
)

func (k SlotKind) String() string {
	switch k {
	case SlotAssigned:
		return "assigned"
	case SlotBye:
		return "bye"
	default:
		return "pending"
	}
}

// Slot is one side of a fixture. The zero value is a pending slot.
type Slot struct {
	kind   SlotKind
	teamID string
}

func Assigned(teamID string) Slot {
	if teamID == "" {
		return Pending()
	}
	return Slot{kind: SlotAssigned, teamID: teamID}
}

func Bye() Slot {
	return Slot{kind: SlotBye}
}

func Pending() Slot {
	return Slot{kind: SlotPending}
}

// ParseSlot rebuilds a slot from its persisted kind and team id.
func ParseSlot(kind, teamID string) Slot {
	switch kind {
	case SlotAssigned.String():
		return Assigned(teamID)
	case SlotBye.String():
		return Bye()
	default:
		return Pending()
	}
}

func (s Slot) Kind() SlotKind {
	return s.kind
}

func (s Slot) TeamID() (string, bool) {
	if s.kind != SlotAssigned {
		return "", false
	}
	return s.teamID, true
}

func (s Slot) IsAssigned() bool {
	return s.kind == SlotAssigned
}

func (s Slot) IsBye() bool {
	return s.kind == SlotBye
}

func (s Slot) IsPending() bool {
	return s.kind == SlotPending
}

func (s Slot) String() string {
	if s.kind == SlotAssigned {
		return s.teamID
	}
	return s.kind.String()
}
