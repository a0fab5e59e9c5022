package Gosrs

import (
	"strings"
	"testing"

	"github.com/ctessum/geom"
)

func TestGeometrySetGet(t *testing.T) {
	g := NewGeometry(geom.Point{X: 116.4, Y: 39.9})
	if HasSRS(g) {
		t.Fatal("新几何不应带坐标系")
	}
	if GetSRS(g) != nil {
		t.Fatal("缺席坐标系应返回nil")
	}

	if err := SetSRS(g, "WGS84"); err != nil {
		t.Fatalf("SetSRS: %v", err)
	}
	// 就地设置，几何自身被修改
	if !HasSRS(g) {
		t.Fatal("SetSRS后几何应带坐标系")
	}
	got := GetSRS(g)
	if got.Proj4() != "+proj=longlat +datum=WGS84 +no_defs" {
		t.Errorf("GetSRS文本不对: %q", got.Proj4())
	}
	// GetSRS返回克隆：关闭它不影响几何
	got.Close()
	if !HasSRS(g) || !IsGeographic(g) {
		t.Error("关闭GetSRS返回的克隆后几何坐标系应不受影响")
	}
}

func TestGeometryOwnsAssignedDescriptor(t *testing.T) {
	g := NewGeometry(geom.Point{X: 1, Y: 2})
	srs := mustSRS(t, "WGS84")
	if err := SetSRS(g, srs); err != nil {
		t.Fatalf("SetSRS: %v", err)
	}
	// 描述符直接赋给几何，而不是克隆
	if g.srs != srs {
		t.Error("几何应直接持有传入的描述符")
	}
}

func TestDatasetSRS(t *testing.T) {
	ds := NewMemoryDataset("")
	if !strings.HasPrefix(ds.Name, "mem_") {
		t.Errorf("内存数据集名称应自动生成: %q", ds.Name)
	}
	// 数据集总是返回描述符，投影未知时为空描述符
	s := ds.GetSRS()
	if s == nil {
		t.Fatal("数据集GetSRS不应返回nil")
	}
	if !s.IsEmpty() || !IsEmptySRS(ds) {
		t.Error("新内存数据集的投影应为空")
	}

	if err := SetSRS(ds, 4326); err != nil {
		t.Fatalf("SetSRS: %v", err)
	}
	if !IsGeographic(ds) {
		t.Error("写入EPSG:4326后数据集应是地理坐标系")
	}
	// 投影按WKT形式存储
	if !strings.Contains(ds.projectionDef, "GEOGCS") {
		t.Errorf("数据集应存储WKT形式: %q", ds.projectionDef)
	}
}

func TestRasterBandDelegates(t *testing.T) {
	ds := NewMemoryDataset("raster")
	b := ds.AddBand()
	if b.Index() != 1 || b.Dataset() != ds {
		t.Fatal("波段归属不对")
	}
	if _, err := ds.Band(2); err == nil {
		t.Error("越界波段序号应报错")
	}

	// 写波段即写数据集
	if err := SetSRS(b, "EPSG:3857"); err != nil {
		t.Fatalf("SetSRS: %v", err)
	}
	dsSRS := ds.GetSRS()
	if dsSRS.IsEmpty() {
		t.Fatal("通过波段设置后数据集投影应非空")
	}
	if !b.GetSRS().Equal(dsSRS) {
		t.Error("波段读出的坐标系应与数据集一致")
	}
	if IsGeographic(b) {
		t.Error("EPSG:3857不是地理坐标系")
	}
}

func TestLayerGeometryRejectsSet(t *testing.T) {
	wgs84 := mustSRS(t, "WGS84")
	l := NewLayer("road", wgs84)
	f := l.AddFeature(geom.Point{X: 1, Y: 2})

	ws := captureWarnings(t)
	if err := SetSRS(f, 3857); err != nil {
		t.Fatalf("图层要素SetSRS应是非致命拒绝，得到错误: %v", err)
	}
	if len(*ws) != 1 {
		t.Fatalf("期望1条告警，得到%d", len(*ws))
	}
	// 要素坐标系保持为图层坐标系
	got := f.GetSRS()
	if !got.Equal(wgs84) {
		t.Errorf("要素坐标系应仍等于图层坐标系: %q", got.Proj4())
	}
	if !IsGeographic(f) {
		t.Error("要素坐标系应仍是地理坐标系")
	}
}

func TestLayerGetSRSClones(t *testing.T) {
	wgs84 := mustSRS(t, "WGS84")
	l := NewLayer("road", wgs84)
	got := l.GetSRS()
	if got == wgs84 {
		t.Error("图层GetSRS应返回克隆副本")
	}
	if !got.Equal(wgs84) {
		t.Error("克隆副本应与图层坐标系等价")
	}
}

func TestSetSRSAbsentTarget(t *testing.T) {
	g := NewGeometry(geom.Point{X: 1, Y: 2})
	ws := captureWarnings(t)

	if err := SetSRS(g, nil); err != nil {
		t.Fatalf("缺席目标应是带告警的空操作: %v", err)
	}
	var nilSRS *SRS
	if err := SetSRS(g, nilSRS); err != nil {
		t.Fatalf("nil描述符应是带告警的空操作: %v", err)
	}
	if len(*ws) != 2 {
		t.Fatalf("期望2条告警，得到%d", len(*ws))
	}
	if HasSRS(g) {
		t.Error("空操作后几何应保持无坐标系")
	}
}

func TestSetSRSBadTarget(t *testing.T) {
	g := NewGeometry(geom.Point{X: 1, Y: 2})
	if err := SetSRS(g, "not a projection"); err == nil {
		t.Error("无法解析的定义应报错")
	}
	if err := SetSRS(g, 3.14); err == nil {
		t.Error("不支持的目标类型应报错")
	}
	if HasSRS(g) {
		t.Error("失败的SetSRS不应修改几何")
	}
}

func TestQueryHelpers(t *testing.T) {
	wgs84 := mustSRS(t, "WGS84")
	merc := mustSRS(t, "EPSG:3857")

	if !IsGeographic(wgs84) || IsGeographic(merc) {
		t.Error("IsGeographic对描述符判断不对")
	}
	if IsEmptySRS(wgs84) {
		t.Error("WGS84不是空描述符")
	}

	g := NewGeometry(geom.Point{})
	if IsGeographic(g) || HasSRS(g) {
		t.Error("无坐标系几何的查询应为false")
	}
	if !IsEmptySRS(g) {
		t.Error("无坐标系几何的IsEmptySRS应为true")
	}
	SetSRS(g, wgs84)
	if !IsGeographic(g) || !HasSRS(g) || IsEmptySRS(g) {
		t.Error("设置坐标系后查询结果不对")
	}
}
