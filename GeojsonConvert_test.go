package Gosrs

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestGeometryToGeoJSONReprojects(t *testing.T) {
	// 投影坐标系下的几何，导出时应先转到WGS84
	src := NewGeometry(geom.Point{X: 116.4, Y: 39.9})
	SetSRS(src, "EPSG:4326")
	projected, err := Reproject(src, 3857)
	if err != nil {
		t.Fatalf("Reproject: %v", err)
	}

	f, err := GeometryToGeoJSON(projected)
	if err != nil {
		t.Fatalf("GeometryToGeoJSON: %v", err)
	}
	p, ok := f.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("几何类型不对: %T", f.Geometry)
	}
	if math.Abs(p[0]-116.4) > 0.01 || math.Abs(p[1]-39.9) > 0.01 {
		t.Errorf("导出的经纬度偏差过大: %v", p)
	}
}

func TestGeometryToGeoJSONNoSRS(t *testing.T) {
	src := NewGeometry(geom.Point{X: 116.4, Y: 39.9})

	ws := captureWarnings(t)
	f, err := GeometryToGeoJSON(src)
	if err != nil {
		t.Fatalf("GeometryToGeoJSON: %v", err)
	}
	if len(*ws) != 1 {
		t.Fatalf("期望1条告警，得到%d", len(*ws))
	}
	// 无坐标系时按原样输出
	p := f.Geometry.(orb.Point)
	if p[0] != 116.4 || p[1] != 39.9 {
		t.Errorf("无坐标系导出应保持原坐标: %v", p)
	}
}

func TestGeometryFromGeoJSON(t *testing.T) {
	f := geojson.NewFeature(orb.Point{116.4, 39.9})

	g, err := GeometryFromGeoJSON(f)
	if err != nil {
		t.Fatalf("GeometryFromGeoJSON: %v", err)
	}
	// RFC 7946规定GeoJSON坐标为WGS84
	if !IsGeographic(g) {
		t.Error("解析出的几何应带WGS84坐标系")
	}
	p := g.Geom.(geom.Point)
	if p.X != 116.4 || p.Y != 39.9 {
		t.Errorf("坐标不对: %v", p)
	}
}

func TestLayerToGeoJSON(t *testing.T) {
	wgs84 := mustSRS(t, "WGS84")
	l := NewLayer("city", wgs84)
	l.AddFeature(geom.Point{X: 116.4, Y: 39.9})
	l.AddFeature(geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}})

	fc, err := LayerToGeoJSON(l)
	if err != nil {
		t.Fatalf("LayerToGeoJSON: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("要素数不对: %d", len(fc.Features))
	}
	if _, ok := fc.Features[1].Geometry.(orb.LineString); !ok {
		t.Errorf("第二个要素类型不对: %T", fc.Features[1].Geometry)
	}
}

func TestPolygonOrbRoundTrip(t *testing.T) {
	// 多边形环在GeoJSON侧闭合，转回后坐标语义不变
	poly := geom.Polygon{{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}}
	og, err := geomToOrb(poly)
	if err != nil {
		t.Fatalf("geomToOrb: %v", err)
	}
	op, ok := og.(orb.Polygon)
	if !ok {
		t.Fatalf("类型不对: %T", og)
	}
	if !op[0].Closed() {
		t.Error("导出的环应闭合")
	}

	back, err := geomFromOrb(og)
	if err != nil {
		t.Fatalf("geomFromOrb: %v", err)
	}
	bp, ok := back.(geom.Polygon)
	if !ok {
		t.Fatalf("类型不对: %T", back)
	}
	if len(bp[0]) < 4 {
		t.Errorf("环顶点数不对: %d", len(bp[0]))
	}
	if bp[0][0] != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("首顶点不对: %v", bp[0][0])
	}
}
