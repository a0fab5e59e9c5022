package Gosrs

import (
	"github.com/ctessum/geom"
)

// ==================== 图层 ====================

// Layer 矢量图层：一组共享同一坐标系的要素几何。
// 图层坐标系在本库中只读，Layer有意不实现SRSAssigner。
type Layer struct {
	Name     string
	srs      *SRS
	features []*LayerGeometry
}

// NewLayer 创建图层。srs可以为nil，表示坐标系未知。
func NewLayer(name string, srs *SRS) *Layer {
	return &Layer{Name: name, srs: srs}
}

// AddFeature 向图层追加一个要素几何，要素坐标系借用图层坐标系。
func (l *Layer) AddFeature(g geom.Geom) *LayerGeometry {
	f := &LayerGeometry{Geom: g, layer: l}
	l.features = append(l.features, f)
	return f
}

// Features 图层的全部要素。
func (l *Layer) Features() []*LayerGeometry {
	return l.features
}

// FeatureCount 要素数量。
func (l *Layer) FeatureCount() int {
	return len(l.features)
}

// GetSRS 查询图层坐标系，克隆出独立持有的描述符副本。未知时返回nil。
func (l *Layer) GetSRS() *SRS {
	if l == nil || l.srs == nil {
		return nil
	}
	return l.srs.Clone()
}
