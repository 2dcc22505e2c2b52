// Package mapexport writes staged quest maps as GeoJSON so they can be
// inspected in any GeoJSON viewer. Grid coordinates are used as-is.
package mapexport

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/world/questmap"
)

// FeatureCollection converts a quest map into one Point feature per staged
// node and one LineString feature per staged edge, in reveal order.
func FeatureCollection(m *questmap.QuestMap) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"seed":   m.Seed,
		"width":  m.Width,
		"height": m.Height,
		"steps":  m.Reveal.Steps(),
	}

	for step, batch := range m.Reveal.NodeBatches {
		for _, n := range batch {
			f := geojson.NewFeature(point(n.Point))
			f.Properties["key"] = n.Key()
			f.Properties["step"] = step
			f.Properties["encounter"] = n.IsEncounter()
			f.Properties["boss"] = n.IsBoss
			f.Properties["distance"] = n.DistanceSinceEncounter
			if n.Portrait != nil {
				f.Properties["portrait"] = n.Portrait.Index
			}
			fc.Append(f)
		}
	}

	for step, batch := range m.Reveal.EdgeBatches {
		for _, seg := range batch {
			f := geojson.NewFeature(orb.LineString{point(seg.A.Point), point(seg.B.Point)})
			f.Properties["step"] = step
			f.Properties["segment"] = seg.String()
			fc.Append(f)
		}
	}

	return fc
}

// Write marshals the map's feature collection to w.
func Write(w io.Writer, m *questmap.QuestMap) error {
	data, err := FeatureCollection(m).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding quest map: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing quest map: %w", err)
	}
	return nil
}

func point(p geom.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}
