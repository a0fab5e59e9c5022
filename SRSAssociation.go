/*
Copyright (C) 2025 [GrainArc]

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package Gosrs

import (
	"errors"
	"fmt"
)

// ==================== 坐标系关联协议 ====================
//
// 各对象种类的读写规则：
//
//	Dataset       读：包装投影文本（可能为空描述符）  写：写入WKT，失败仅告警
//	RasterBand    读：委托数据集                      写：委托数据集
//	Geometry      读：克隆自有参考，缺席返回nil       写：直接持有描述符
//	LayerGeometry 读：委托图层                        写：拒绝并告警（坐标系归图层）
//	Layer         读：克隆图层参考                    写：不提供（类型层面只读）

// SpatialReferencer 可查询空间参考的对象。
type SpatialReferencer interface {
	GetSRS() *SRS
}

// SRSAssigner 还允许设置空间参考的对象。
// Layer有意不实现该接口：图层坐标系在本库中只读，这是编译期约束。
type SRSAssigner interface {
	SpatialReferencer
	assignSRS(*SRS)
}

// GetSRS 查询对象的空间参考。缺席时返回nil。
func GetSRS(obj SpatialReferencer) *SRS {
	if obj == nil {
		return nil
	}
	return obj.GetSRS()
}

// normalizeSRSTarget 把 {*SRS | EPSG代码 | 定义字符串 | nil} 归一化为描述符。
// absent为true表示目标缺席，调用方应告警并原样返回对象。
func normalizeSRSTarget(target interface{}) (srs *SRS, absent bool, err error) {
	switch t := target.(type) {
	case nil:
		return nil, true, nil
	case *SRS:
		if t == nil {
			return nil, true, nil
		}
		if t.released {
			return nil, false, &InvalidDescriptorError{Definition: t.def, Err: errors.New("描述符已关闭")}
		}
		return t, false, nil
	case int:
		s, err := NewSRSFromEPSG(t)
		return s, false, err
	case string:
		s, err := NewSRS(t)
		return s, false, err
	default:
		return nil, false, &InvalidDescriptorError{
			Definition: fmt.Sprintf("%v", target),
			Err:        fmt.Errorf("不支持的目标类型 %T", target),
		}
	}
}

// SetSRS 设置对象的空间参考。目标可以是描述符、EPSG代码或定义字符串，
// 统一先归一化为描述符再按对象种类分发。目标缺席（nil）是带告警的空操作，
// 便于可选坐标系的调用链组合；定义无法解析则是致命错误。
func SetSRS(obj SRSAssigner, target interface{}) error {
	if obj == nil {
		return fmt.Errorf("对象为空")
	}
	srs, absent, err := normalizeSRSTarget(target)
	if err != nil {
		return err
	}
	if absent {
		warnf("SetSRS", "目标坐标系缺席，对象保持不变")
		return nil
	}
	obj.assignSRS(srs)
	return nil
}

// ==================== 查询助手 ====================

// HasSRS 对象是否带有非缺席的空间参考。
func HasSRS(obj SpatialReferencer) bool {
	return GetSRS(obj) != nil
}

// IsGeographic 判断描述符或对象的坐标系是否为地理坐标系。
// 入参可以是*SRS，也可以是任何可查询空间参考的对象。
func IsGeographic(x interface{}) bool {
	switch t := x.(type) {
	case *SRS:
		return t.IsGeographic()
	case SpatialReferencer:
		return t.GetSRS().IsGeographic()
	}
	return false
}

// IsEmptySRS 判断描述符或对象的坐标系定义文本是否为空。
func IsEmptySRS(x interface{}) bool {
	switch t := x.(type) {
	case *SRS:
		return t.IsEmpty()
	case SpatialReferencer:
		return t.GetSRS().IsEmpty()
	}
	return true
}
