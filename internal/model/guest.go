package model

// Guest represents a person who has appeared on the show.  Like
// Episode, a guest owns its appearances and deleting the guest removes
// them.  This struct corresponds to a row in the `guests` table.
//
// Fields:
//  ID          – primary key identifier, assigned by the store.
//  Name        – display name of the guest.
//  Occupation  – free-form occupation (e.g. "actor").
//  Appearances – episodes this guest appeared on; only populated on
//                request.
type Guest struct {
	ID          uint64       // guests.id
	Name        string       // guests.name
	Occupation  string       // guests.occupation
	Appearances []Appearance // appearances.guest_id = guests.id
}
