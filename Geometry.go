package Gosrs

import (
	"github.com/ctessum/geom"
)

// ==================== 几何对象 ====================

// Geometry 独立几何对象。坐标系归几何自身所有：一旦设置即可独立变更，
// 与图层无关。坐标系未设置时表示“来源不明”，重投影时只声明不变换。
type Geometry struct {
	Geom geom.Geom // 引擎几何
	srs  *SRS      // 自有坐标系，nil表示未知
}

// NewGeometry 包装引擎几何为独立几何对象，初始不带坐标系。
func NewGeometry(g geom.Geom) *Geometry {
	return &Geometry{Geom: g}
}

// GetSRS 查询几何自有坐标系。未设置时返回nil（缺席），
// 已设置时克隆出独立持有的描述符副本。
func (g *Geometry) GetSRS() *SRS {
	if g == nil || g.srs == nil {
		return nil
	}
	return g.srs.Clone()
}

// assignSRS 直接把描述符赋给几何，几何自此持有该参考。
func (g *Geometry) assignSRS(s *SRS) {
	g.srs = s
}

// LayerGeometry 图层要素几何。坐标系从所属图层借用，
// 本对象永不独立持有坐标系，设置请求按策略拒绝并告警。
type LayerGeometry struct {
	Geom  geom.Geom // 引擎几何
	layer *Layer    // 所属图层
}

// Layer 所属图层。
func (lg *LayerGeometry) Layer() *Layer {
	return lg.layer
}

// GetSRS 读取委托给所属图层。
func (lg *LayerGeometry) GetSRS() *SRS {
	if lg == nil || lg.layer == nil {
		return nil
	}
	return lg.layer.GetSRS()
}

// assignSRS 图层要素的坐标系归图层所有，拒绝单独设置（非致命，对象不变）。
func (lg *LayerGeometry) assignSRS(s *SRS) {
	warnf("SetSRS", "图层要素的坐标系归图层所有，不能单独设置")
}
