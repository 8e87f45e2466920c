package model

// Rating bounds for an appearance, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Appearance is the join record between a guest and an episode, carrying
// the rating of that guest's appearance.  It references its episode and
// guest by foreign key and does not own them.
//
// Fields:
//  ID        – primary key identifier.
//  Rating    – 1 to 5; always validated before it is stored.
//  EpisodeID – episodes.id of the episode (required).
//  GuestID   – guests.id of the guest (required).
//  Episode   – the referenced episode when loaded, otherwise nil.
//  Guest     – the referenced guest when loaded, otherwise nil.
type Appearance struct {
	ID        uint64   // appearances.id
	Rating    int      // appearances.rating
	EpisodeID uint64   // appearances.episode_id
	GuestID   uint64   // appearances.guest_id
	Episode   *Episode // joined on episode_id
	Guest     *Guest   // joined on guest_id
}

// NewAppearance builds an appearance after checking the rating.  It is
// the only way handlers create appearances so an out-of-range rating
// never reaches the store.
func NewAppearance(rating int, episodeID, guestID uint64) (*Appearance, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	return &Appearance{Rating: rating, EpisodeID: episodeID, GuestID: guestID}, nil
}

// SetRating changes the rating, leaving the appearance untouched when the
// new value is out of range.
func (a *Appearance) SetRating(rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	a.Rating = rating
	return nil
}

// ValidateRating reports a *ValidationError unless MinRating <= r <= MaxRating.
func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	return nil
}
