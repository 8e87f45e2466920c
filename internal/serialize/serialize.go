// Package serialize turns catalog records into JSON-ready maps.
//
// Episode, Guest and Appearance reference each other, so every function
// here decides how deep to nest: a record's nested relations never point
// back at the record being serialized, and a nested episode or guest never
// carries its own appearances.
package serialize

import (
	"github.com/samber/lo"

	"github.com/iliyamo/lateshow-api/internal/model"
)

// Record is one serialized entity.
type Record map[string]any

// Only returns a copy of r holding just the named top-level fields.
// Unknown names are ignored.
func (r Record) Only(fields ...string) Record {
	return Record(lo.PickByKeys(map[string]any(r), fields))
}

// Field sets used by the list endpoints.
var (
	EpisodeSummary = []string{"id", "date", "number"}
	GuestSummary   = []string{"id", "name", "occupation"}
)

// Episode serializes e with its appearances.  Each appearance carries its
// guest but not the episode it belongs to.
func Episode(e *model.Episode) Record {
	r := episodeFields(e)
	r["appearances"] = lo.Map(e.Appearances, func(a model.Appearance, _ int) Record {
		ar := appearanceFields(&a)
		if a.Guest != nil {
			ar["guest"] = guestFields(a.Guest)
		}
		return ar
	})
	return r
}

// Guest serializes g with its appearances.  Each appearance carries its
// episode but not the guest it belongs to.
func Guest(g *model.Guest) Record {
	r := guestFields(g)
	r["appearances"] = lo.Map(g.Appearances, func(a model.Appearance, _ int) Record {
		ar := appearanceFields(&a)
		if a.Episode != nil {
			ar["episode"] = episodeFields(a.Episode)
		}
		return ar
	})
	return r
}

// Appearance serializes a with its episode and guest, neither of which
// includes its own appearances.
func Appearance(a *model.Appearance) Record {
	r := appearanceFields(a)
	if a.Episode != nil {
		r["episode"] = episodeFields(a.Episode)
	}
	if a.Guest != nil {
		r["guest"] = guestFields(a.Guest)
	}
	return r
}

// EpisodeList serializes episodes projected to EpisodeSummary.
func EpisodeList(episodes []*model.Episode) []Record {
	return lo.Map(episodes, func(e *model.Episode, _ int) Record {
		return Episode(e).Only(EpisodeSummary...)
	})
}

// GuestList serializes guests projected to GuestSummary.
func GuestList(guests []*model.Guest) []Record {
	return lo.Map(guests, func(g *model.Guest, _ int) Record {
		return Guest(g).Only(GuestSummary...)
	})
}

func episodeFields(e *model.Episode) Record {
	return Record{"id": e.ID, "date": e.Date, "number": e.Number}
}

func guestFields(g *model.Guest) Record {
	return Record{"id": g.ID, "name": g.Name, "occupation": g.Occupation}
}

func appearanceFields(a *model.Appearance) Record {
	return Record{"id": a.ID, "rating": a.Rating, "episode_id": a.EpisodeID, "guest_id": a.GuestID}
}
