package Gosrs

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ==================== GeoJSON 转换 ====================
//
// GeoJSON按RFC 7946固定使用WGS84经纬度，导出时先把几何重投影过去。

// GeometryToGeoJSON 把几何导出为GeoJSON要素。
// 带坐标系的几何先重投影到WGS84；缺少坐标系的按WGS84原样输出并告警。
func GeometryToGeoJSON(g *Geometry) (*geojson.Feature, error) {
	if g == nil || g.Geom == nil {
		return nil, fmt.Errorf("几何为空")
	}
	src := g
	if g.srs != nil && !g.srs.IsEmpty() {
		wgs84, err := NewSRS()
		if err != nil {
			return nil, err
		}
		src, err = Reproject(g, wgs84)
		if err != nil {
			return nil, err
		}
	} else {
		warnf("GeometryToGeoJSON", "几何缺少坐标系，按WGS84原样输出")
	}
	og, err := geomToOrb(src.Geom)
	if err != nil {
		return nil, err
	}
	return geojson.NewFeature(og), nil
}

// LayerToGeoJSON 把整个图层导出为GeoJSON要素集。
func LayerToGeoJSON(l *Layer) (*geojson.FeatureCollection, error) {
	if l == nil {
		return nil, fmt.Errorf("图层为空")
	}
	src := l
	if l.srs != nil && !l.srs.IsEmpty() {
		wgs84, err := NewSRS()
		if err != nil {
			return nil, err
		}
		src, err = ReprojectLayer(l, wgs84)
		if err != nil {
			return nil, err
		}
	} else {
		warnf("LayerToGeoJSON", "图层缺少坐标系，按WGS84原样输出")
	}
	fc := geojson.NewFeatureCollection()
	for _, f := range src.features {
		og, err := geomToOrb(f.Geom)
		if err != nil {
			return nil, err
		}
		fc.Append(geojson.NewFeature(og))
	}
	return fc, nil
}

// GeometryFromGeoJSON 从GeoJSON要素构建几何对象，坐标系为WGS84。
func GeometryFromGeoJSON(f *geojson.Feature) (*Geometry, error) {
	if f == nil || f.Geometry == nil {
		return nil, fmt.Errorf("要素为空")
	}
	gg, err := geomFromOrb(f.Geometry)
	if err != nil {
		return nil, err
	}
	wgs84, err := NewSRS()
	if err != nil {
		return nil, err
	}
	out := NewGeometry(gg)
	out.assignSRS(wgs84)
	return out, nil
}

// ==================== 几何类型映射 ====================

func orbRing(r []geom.Point) orb.Ring {
	ring := make(orb.Ring, len(r))
	for i, p := range r {
		ring[i] = orb.Point{p.X, p.Y}
	}
	// GeoJSON要求环闭合
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func geomToOrb(g geom.Geom) (orb.Geometry, error) {
	switch t := g.(type) {
	case geom.Point:
		return orb.Point{t.X, t.Y}, nil
	case *geom.Point:
		return orb.Point{t.X, t.Y}, nil
	case geom.MultiPoint:
		mp := make(orb.MultiPoint, len(t))
		for i, p := range t {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp, nil
	case geom.LineString:
		ls := make(orb.LineString, len(t))
		for i, p := range t {
			ls[i] = orb.Point{p.X, p.Y}
		}
		return ls, nil
	case geom.MultiLineString:
		mls := make(orb.MultiLineString, len(t))
		for i, l := range t {
			ls := make(orb.LineString, len(l))
			for j, p := range l {
				ls[j] = orb.Point{p.X, p.Y}
			}
			mls[i] = ls
		}
		return mls, nil
	case geom.Polygon:
		poly := make(orb.Polygon, len(t))
		for i, r := range t {
			poly[i] = orbRing(r)
		}
		return poly, nil
	case geom.MultiPolygon:
		mp := make(orb.MultiPolygon, len(t))
		for i, p := range t {
			poly := make(orb.Polygon, len(p))
			for j, r := range p {
				poly[j] = orbRing(r)
			}
			mp[i] = poly
		}
		return mp, nil
	}
	return nil, fmt.Errorf("不支持的几何类型 %T", g)
}

func geomFromOrb(g orb.Geometry) (geom.Geom, error) {
	switch t := g.(type) {
	case orb.Point:
		return geom.Point{X: t[0], Y: t[1]}, nil
	case orb.MultiPoint:
		mp := make(geom.MultiPoint, len(t))
		for i, p := range t {
			mp[i] = geom.Point{X: p[0], Y: p[1]}
		}
		return mp, nil
	case orb.LineString:
		ls := make(geom.LineString, len(t))
		for i, p := range t {
			ls[i] = geom.Point{X: p[0], Y: p[1]}
		}
		return ls, nil
	case orb.MultiLineString:
		mls := make(geom.MultiLineString, len(t))
		for i, l := range t {
			ls := make(geom.LineString, len(l))
			for j, p := range l {
				ls[j] = geom.Point{X: p[0], Y: p[1]}
			}
			mls[i] = ls
		}
		return mls, nil
	case orb.Polygon:
		poly := make(geom.Polygon, len(t))
		for i, r := range t {
			ring := make([]geom.Point, len(r))
			for j, p := range r {
				ring[j] = geom.Point{X: p[0], Y: p[1]}
			}
			poly[i] = ring
		}
		return poly, nil
	case orb.MultiPolygon:
		mp := make(geom.MultiPolygon, len(t))
		for i, p := range t {
			poly := make(geom.Polygon, len(p))
			for j, r := range p {
				ring := make([]geom.Point, len(r))
				for k, pt := range r {
					ring[k] = geom.Point{X: pt[0], Y: pt[1]}
				}
				poly[j] = ring
			}
			mp[i] = poly
		}
		return mp, nil
	}
	return nil, fmt.Errorf("不支持的GeoJSON几何类型 %T", g)
}
