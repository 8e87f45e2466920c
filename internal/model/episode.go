package model

// Episode represents one broadcast of the show.  An episode owns its
// appearances: deleting the episode deletes every appearance that
// references it.  This struct corresponds to a row in the `episodes`
// table.
//
// Fields:
//  ID          – primary key identifier, assigned by the store.
//  Date        – broadcast date as it was recorded (e.g. "1/11/99").
//  Number      – episode number.
//  Appearances – guests who appeared on this episode; only populated
//                when the store is asked to load them.
type Episode struct {
	ID          uint64       // episodes.id
	Date        string       // episodes.date
	Number      int          // episodes.number
	Appearances []Appearance // appearances.episode_id = episodes.id
}
