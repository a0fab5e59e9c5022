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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
)

// ==================== 空间参考描述符 ====================

// SRS 空间参考描述符。持有引擎解析后的原生参考对象以及规范化的定义文本。
// 一个描述符独占一份原生参考；Clone是唯一的共享方式，且总是产生独立副本。
// 定义文本长度为零表示“空描述符”（坐标系未知），与解析失败不同。
type SRS struct {
	sr       *proj.SR // 引擎原生参考，空描述符时为nil
	def      string   // 规范化定义文本（Proj4或WKT）
	released bool     // Close后置位，防止二次释放
}

// InvalidDescriptorError 定义文本无法被引擎解析，构建中止，不产生描述符。
type InvalidDescriptorError struct {
	Definition string
	Err        error
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("无法解析坐标系定义 %q: %v", e.Definition, e.Err)
}

func (e *InvalidDescriptorError) Unwrap() error { return e.Err }

// NewSRS 从定义字符串构建空间参考描述符。
// 定义可以是别名（见srsAliases）、Proj4串、WKT串或"EPSG:####"形式；
// 不传参数时默认"WGS84"。解析失败返回*InvalidDescriptorError，不产生半成品。
func NewSRS(definition ...string) (*SRS, error) {
	def := "WGS84"
	if len(definition) > 0 {
		def = definition[0]
	}
	resolved := ResolveAlias(def)
	if code, ok := parseEPSGText(resolved); ok {
		p4, ok := epsgProj4[code]
		if !ok {
			return nil, &InvalidDescriptorError{Definition: def, Err: fmt.Errorf("不支持的EPSG代码: %d", code)}
		}
		resolved = p4
	}
	sr, err := proj.Parse(resolved)
	if err != nil {
		return nil, &InvalidDescriptorError{Definition: def, Err: err}
	}
	return &SRS{sr: sr, def: resolved}, nil
}

// NewSRSFromEPSG 从EPSG代码构建空间参考描述符。
func NewSRSFromEPSG(code int) (*SRS, error) {
	p4, ok := epsgProj4[code]
	if !ok {
		return nil, &InvalidDescriptorError{
			Definition: fmt.Sprintf("EPSG:%d", code),
			Err:        fmt.Errorf("不支持的EPSG代码: %d", code),
		}
	}
	return NewSRS(p4)
}

// newEmptySRS 空描述符，表示坐标系未知。仅供数据集等对象包装空投影文本。
func newEmptySRS() *SRS {
	return &SRS{}
}

// Clone 克隆出独立持有的描述符副本。已关闭描述符的副本同样处于已关闭状态，
// 不会产生看似可用、实际没有原生参考的描述符。
func (s *SRS) Clone() *SRS {
	if s == nil {
		return nil
	}
	if s.sr == nil {
		return &SRS{def: s.def, released: s.released}
	}
	cp := *s.sr
	return &SRS{sr: &cp, def: s.def}
}

// Close 释放描述符持有的原生参考。释放是确定性的、恰好一次的；
// 重复Close无效果，已关闭的描述符不能再参与关联或重投影。
func (s *SRS) Close() error {
	if s == nil || s.released {
		return nil
	}
	s.sr = nil
	s.released = true
	return nil
}

// IsEmpty 描述符是否为空（定义文本长度为零）。
func (s *SRS) IsEmpty() bool {
	return s == nil || len(s.def) == 0
}

// IsGeographic 是否是地理坐标系（经纬度角度坐标，非投影平面坐标）。
// 判据与引擎一致：参考名为longlat。
func (s *SRS) IsGeographic() bool {
	return s != nil && s.sr != nil && s.sr.Name == "longlat"
}

// Definition 规范化后的定义文本。
func (s *SRS) Definition() string {
	if s == nil {
		return ""
	}
	return s.def
}

// Proj4 按需导出Proj4文本。定义本身是Proj4时原样返回，否则由原生参考字段生成。
func (s *SRS) Proj4() string {
	if s == nil || s.def == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(s.def), "+") {
		return s.def
	}
	return proj4FromSR(s.sr)
}

// WKT 按需导出WKT文本。定义本身是WKT时原样返回，否则由原生参考字段生成。
func (s *SRS) WKT() string {
	if s == nil || s.def == "" {
		return ""
	}
	if looksLikeWKT(s.def) {
		return s.def
	}
	return wktFromSR(s.sr)
}

// Equal 判断两个描述符是否等价。优先用引擎的参考比较，空描述符比较定义文本。
func (s *SRS) Equal(o *SRS) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.sr != nil && o.sr != nil {
		return s.sr.Equal(o.sr, 3)
	}
	return s.def == o.def
}

// String 显示形式："Empty SRS" 或 Proj4文本。
func (s *SRS) String() string {
	if s.IsEmpty() {
		return "Empty SRS"
	}
	return s.Proj4()
}

// PrintSRS 打印描述符的显示形式。
func PrintSRS(s *SRS) {
	fmt.Println(s.String())
}

// ==================== 文本导出 ====================

const deg2rad = math.Pi / 180

func looksLikeWKT(def string) bool {
	for _, kw := range []string{"GEOGCS", "GEOCCS", "PROJCS", "LOCAL_CS"} {
		if strings.Contains(def, kw) {
			return true
		}
	}
	return false
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// proj4ShortNames WKT投影名 → Proj4短名
var proj4ShortNames = map[string]string{
	"Mercator":                              "merc",
	"Mercator_1SP":                          "merc",
	"Mercator_Auxiliary_Sphere":             "merc",
	"Popular Visualisation Pseudo Mercator": "merc",
	"Transverse_Mercator":                   "tmerc",
	"Transverse Mercator":                   "tmerc",
	"Albers_Conic_Equal_Area":               "aea",
	"Albers":                                "aea",
	"Lambert_Conformal_Conic":               "lcc",
	"Lambert_Conformal_Conic_2SP":           "lcc",
	"Universal Transverse Mercator System":  "utm",
	"identity":                              "longlat",
}

// proj4FromSR 由原生参考字段生成Proj4文本，用于WKT来源的描述符。
func proj4FromSR(sr *proj.SR) string {
	if sr == nil {
		return ""
	}
	name := sr.Name
	if short, ok := proj4ShortNames[name]; ok {
		name = short
	}
	parts := []string{"+proj=" + name}
	addDeg := func(key string, v float64) {
		if !math.IsNaN(v) {
			parts = append(parts, "+"+key+"="+fnum(v/deg2rad))
		}
	}
	addLin := func(key string, v float64) {
		if !math.IsNaN(v) {
			parts = append(parts, "+"+key+"="+fnum(v))
		}
	}
	if name != "longlat" {
		addDeg("lat_0", sr.Lat0)
		addDeg("lat_1", sr.Lat1)
		addDeg("lat_2", sr.Lat2)
		addDeg("lat_ts", sr.LatTS)
		addDeg("lon_0", sr.Long0)
		if !math.IsNaN(sr.Zone) && sr.Zone != 0 {
			parts = append(parts, "+zone="+fnum(sr.Zone))
			if sr.UTMSouth {
				parts = append(parts, "+south")
			}
		}
		addLin("k", sr.K0)
		addLin("x_0", sr.X0)
		addLin("y_0", sr.Y0)
	}
	switch {
	case strings.EqualFold(sr.DatumCode, "wgs84"):
		parts = append(parts, "+datum=WGS84")
	case sr.DatumCode != "" && sr.DatumCode != "none" && sr.DatumCode != "unknown":
		parts = append(parts, "+datum="+sr.DatumCode)
	case sr.Ellps != "":
		parts = append(parts, "+ellps="+sr.Ellps)
	default:
		addLin("a", sr.A)
		addLin("b", sr.B)
	}
	if name != "longlat" {
		parts = append(parts, "+units=m")
	}
	parts = append(parts, "+no_defs")
	return strings.Join(parts, " ")
}

// wktProjectionNames Proj4短名 → WKT投影名
var wktProjectionNames = map[string]string{
	"merc":  "Mercator_1SP",
	"tmerc": "Transverse_Mercator",
	"lcc":   "Lambert_Conformal_Conic_2SP",
	"aea":   "Albers_Conic_Equal_Area",
}

// wktDatumNames 引擎基准面代码 → WKT基准面名
var wktDatumNames = map[string]string{
	"wgs84": "WGS_1984",
	"WGS84": "WGS_1984",
	"nad83": "North_American_Datum_1983",
}

func wktSpheroid(sr *proj.SR) string {
	name := sr.EllipseName
	if name == "" {
		name = sr.Ellps
	}
	if name == "" {
		name = "unnamed"
	}
	rf := sr.Rf
	if math.IsNaN(rf) || sr.A == sr.B {
		rf = 0
	}
	return fmt.Sprintf("SPHEROID[%q,%s,%s]", name, fnum(sr.A), fnum(rf))
}

// wktGeogCS 生成地理坐标系片段。嵌入PROJCS时不带UNIT节（引擎解析顺序的限制）。
func wktGeogCS(sr *proj.SR, topLevel bool) string {
	datum := wktDatumNames[sr.DatumCode]
	if datum == "" {
		datum = "unknown"
	}
	s := fmt.Sprintf("GEOGCS[\"unnamed\",DATUM[%q,%s],PRIMEM[\"Greenwich\",0]", datum, wktSpheroid(sr))
	if topLevel {
		s += ",UNIT[\"degree\",0.0174532925199433]"
	}
	return s + "]"
}

// wktFromSR 由原生参考字段生成WKT文本，用于Proj4来源的描述符。
func wktFromSR(sr *proj.SR) string {
	if sr == nil {
		return ""
	}
	if sr.Name == "longlat" || sr.Name == "identity" {
		return wktGeogCS(sr, true)
	}
	projName := sr.Name
	var params []string
	addParam := func(name string, v, scale float64) {
		if !math.IsNaN(v) {
			params = append(params, fmt.Sprintf("PARAMETER[%q,%s]", name, fnum(v/scale)))
		}
	}
	if sr.Name == "utm" {
		// UTM在WKT中按横轴墨卡托展开
		projName = "Transverse_Mercator"
		y0 := 0.0
		if sr.UTMSouth {
			y0 = 10000000
		}
		params = append(params,
			"PARAMETER[\"latitude_of_origin\",0]",
			fmt.Sprintf("PARAMETER[\"central_meridian\",%s]", fnum(sr.Zone*6-183)),
			"PARAMETER[\"scale_factor\",0.9996]",
			"PARAMETER[\"false_easting\",500000]",
			fmt.Sprintf("PARAMETER[\"false_northing\",%s]", fnum(y0)))
	} else {
		if n, ok := wktProjectionNames[sr.Name]; ok {
			projName = n
		}
		addParam("standard_parallel_1", sr.Lat1, deg2rad)
		addParam("standard_parallel_2", sr.Lat2, deg2rad)
		addParam("latitude_of_origin", sr.Lat0, deg2rad)
		addParam("central_meridian", sr.Long0, deg2rad)
		addParam("scale_factor", sr.K0, 1)
		x0, y0 := sr.X0, sr.Y0
		if math.IsNaN(x0) {
			x0 = 0
		}
		if math.IsNaN(y0) {
			y0 = 0
		}
		params = append(params,
			fmt.Sprintf("PARAMETER[\"false_easting\",%s]", fnum(x0)),
			fmt.Sprintf("PARAMETER[\"false_northing\",%s]", fnum(y0)))
	}
	return fmt.Sprintf("PROJCS[\"unnamed\",%s,PROJECTION[%q],%s,UNIT[\"metre\",1]]",
		wktGeogCS(sr, false), projName, strings.Join(params, ","))
}
