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

// ==================== 重投影 ====================

// ReprojectionFailedError 引擎坐标变换失败，不返回残缺几何。
type ReprojectionFailedError struct {
	From string
	To   string
	Err  error
}

func (e *ReprojectionFailedError) Error() string {
	return fmt.Sprintf("重投影失败 (%q → %q): %v", e.From, e.To, e.Err)
}

func (e *ReprojectionFailedError) Unwrap() error { return e.Err }

// Reproject 把几何重投影到目标坐标系。目标可以是描述符、EPSG代码或定义字符串。
//
// 几何已有坐标系时走克隆-变换路径：变换作用在克隆上，成功后新几何持有目标
// 坐标系返回，原几何保持不变。几何没有坐标系时没有安全的变换起点，只把目标
// 坐标系就地声明到原几何上返回（声明而非变换）。
//
// 目标为空描述符时定义为恒等，原样返回；目标缺席（nil）是带告警的空操作。
func Reproject(g *Geometry, target interface{}) (*Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("几何为空")
	}
	srs, absent, err := normalizeSRSTarget(target)
	if err != nil {
		return nil, err
	}
	if absent {
		warnf("Reproject", "目标坐标系缺席，几何保持不变")
		return g, nil
	}
	if srs.IsEmpty() {
		// 重投影到“无坐标系”定义为恒等
		return g, nil
	}
	if g.srs == nil || g.srs.IsEmpty() {
		// 无源坐标系：不变换坐标，仅声明
		g.assignSRS(srs)
		return g, nil
	}
	// 几何持有的描述符可能已被调用方Close，此时没有原生参考可用
	if g.srs.sr == nil {
		return nil, &ReprojectionFailedError{From: g.srs.def, To: srs.def, Err: errors.New("源坐标系描述符已关闭")}
	}
	trans, err := g.srs.sr.NewTransform(srs.sr)
	if err != nil {
		return nil, &ReprojectionFailedError{From: g.srs.def, To: srs.def, Err: err}
	}
	ng, err := g.Geom.Transform(trans)
	if err != nil {
		return nil, &ReprojectionFailedError{From: g.srs.def, To: srs.def, Err: err}
	}
	out := NewGeometry(ng)
	out.assignSRS(srs)
	return out, nil
}

// ReprojectLayer 把整个图层重投影到目标坐标系，返回持有目标坐标系的新图层。
// 图层缺少源坐标系时没有安全起点，按致命错误处理（图层坐标系只读，无法声明）。
func ReprojectLayer(l *Layer, target interface{}) (*Layer, error) {
	if l == nil {
		return nil, fmt.Errorf("图层为空")
	}
	srs, absent, err := normalizeSRSTarget(target)
	if err != nil {
		return nil, err
	}
	if absent {
		warnf("Reproject", "目标坐标系缺席，图层保持不变")
		return l, nil
	}
	if srs.IsEmpty() {
		return l, nil
	}
	if l.srs == nil || l.srs.IsEmpty() {
		return nil, &ReprojectionFailedError{To: srs.def, Err: errors.New("图层缺少源坐标系")}
	}
	if l.srs.sr == nil {
		return nil, &ReprojectionFailedError{From: l.srs.def, To: srs.def, Err: errors.New("源坐标系描述符已关闭")}
	}
	trans, err := l.srs.sr.NewTransform(srs.sr)
	if err != nil {
		return nil, &ReprojectionFailedError{From: l.srs.def, To: srs.def, Err: err}
	}
	out := NewLayer(l.Name, srs.Clone())
	for _, f := range l.features {
		ng, err := f.Geom.Transform(trans)
		if err != nil {
			return nil, &ReprojectionFailedError{From: l.srs.def, To: srs.def, Err: err}
		}
		out.AddFeature(ng)
	}
	return out, nil
}
