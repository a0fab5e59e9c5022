package Gosrs

// ==================== 栅格波段 ====================

// RasterBand 栅格波段。波段不独立存储投影，
// 坐标系的读写全部委托所属数据集。
type RasterBand struct {
	index int
	ds    *Dataset
}

// Index 波段序号，从1起。
func (b *RasterBand) Index() int {
	return b.index
}

// Dataset 所属数据集。
func (b *RasterBand) Dataset() *Dataset {
	return b.ds
}

// GetSRS 委托所属数据集。
func (b *RasterBand) GetSRS() *SRS {
	if b == nil || b.ds == nil {
		return nil
	}
	return b.ds.GetSRS()
}

// assignSRS 委托所属数据集。
func (b *RasterBand) assignSRS(s *SRS) {
	if b == nil || b.ds == nil {
		warnf("SetSRS", "波段没有所属数据集，坐标系未设置")
		return
	}
	b.ds.assignSRS(s)
}
