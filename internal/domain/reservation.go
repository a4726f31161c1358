package domain

// Reservation is a committed reservation owned by the external reservation
// authority. Created only by the commit protocol; immutable thereafter.
type Reservation struct {
	ReferenceID int64
	CitizenNIC  string
	SlotID      int64
}
