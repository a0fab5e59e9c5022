package Gosrs

import (
	"strconv"
	"strings"
)

// =====================================================
// 坐标系别名与EPSG代码表
// =====================================================

// WebMercatorProj4 Web地图通用的伪墨卡托投影（EPSG:3857）
const WebMercatorProj4 = "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +no_defs"

// srsAliases 常用坐标系别名 → Proj4定义。键区分大小写，未命中的输入原样返回。
var srsAliases = map[string]string{
	"WGS84":     "+proj=longlat +datum=WGS84 +no_defs",
	"NAD83":     "+proj=longlat +datum=NAD83 +no_defs",
	"GRS80":     "+proj=longlat +ellps=GRS80 +no_defs",
	"USNatAtl":  "+proj=laea +lat_0=45 +lon_0=-100 +x_0=0 +y_0=0 +a=6370997 +b=6370997 +units=m +no_defs",
	"NALCC":     "+proj=lcc +lat_1=20 +lat_2=60 +lat_0=40 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m +no_defs",
	"NAAEAC":    "+proj=aea +lat_1=20 +lat_2=60 +lat_0=40 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m +no_defs",
	"Robinson":  "+proj=robin +lon_0=0 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	"Mollweide": "+proj=moll +lon_0=0 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
}

// epsgProj4 内置EPSG代码 → Proj4定义。
// 纯Go引擎没有EPSG数据库，这里固化常用代码；不在表中的代码构建描述符时报错。
var epsgProj4 = map[int]string{
	// 地理坐标系
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	4269: "+proj=longlat +datum=NAD83 +no_defs",
	4490: "+proj=longlat +ellps=GRS80 +no_defs", // CGCS2000
	// 投影坐标系
	3857:   WebMercatorProj4,
	900913: WebMercatorProj4,
	3395:   "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	2163:   "+proj=laea +lat_0=45 +lon_0=-100 +x_0=0 +y_0=0 +a=6370997 +b=6370997 +units=m +no_defs",
	5070:   "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=23 +lon_0=-96 +x_0=0 +y_0=0 +datum=NAD83 +units=m +no_defs",
	32633:  "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs",
	32650:  "+proj=utm +zone=50 +datum=WGS84 +units=m +no_defs",
	// CGCS2000 3度带（25带、26带）
	4513: "+proj=tmerc +lat_0=0 +lon_0=75 +k=1 +x_0=25500000 +y_0=0 +ellps=GRS80 +units=m +no_defs",
	4514: "+proj=tmerc +lat_0=0 +lon_0=78 +k=1 +x_0=26500000 +y_0=0 +ellps=GRS80 +units=m +no_defs",
}

// ResolveAlias 解析坐标系别名。已知别名返回对应的Proj4定义字面量，
// 其余输入视为已经是规范形式（Proj4/WKT/EPSG代码），原样返回。无失败路径。
func ResolveAlias(name string) string {
	if def, ok := srsAliases[name]; ok {
		return def
	}
	return name
}

// parseEPSGText 识别 "EPSG:####" 形式的定义文本，返回代码值。
func parseEPSGText(def string) (int, bool) {
	s := strings.TrimSpace(def)
	if !strings.HasPrefix(strings.ToUpper(s), "EPSG:") {
		return 0, false
	}
	code, err := strconv.Atoi(strings.TrimSpace(s[5:]))
	if err != nil {
		return 0, false
	}
	return code, true
}
