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
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ==================== 数据集 ====================

// Dataset 数据集：投影定义文本的持有者。可以是纯内存数据集，
// 也可以由GeoPackage文件承载，后者的投影修改会写回文件。
// 波段不独立存储投影，全部委托到这里。
type Dataset struct {
	Name          string
	projectionDef string        // 投影定义文本（WKT），可为空
	bands         []*RasterBand
	db            *sql.DB // GeoPackage后端，内存数据集时为nil
	tableName     string  // gpkg_contents中投影写回的目标表
}

// NewMemoryDataset 创建内存数据集。名称为空时自动生成。
func NewMemoryDataset(name string) *Dataset {
	if name == "" {
		name = "mem_" + strings.Split(uuid.New().String(), "-")[0]
	}
	return &Dataset{Name: name}
}

// AddBand 追加一个波段并返回它，序号从1起。
func (ds *Dataset) AddBand() *RasterBand {
	b := &RasterBand{index: len(ds.bands) + 1, ds: ds}
	ds.bands = append(ds.bands, b)
	return b
}

// Band 按序号取波段。
func (ds *Dataset) Band(index int) (*RasterBand, error) {
	if index < 1 || index > len(ds.bands) {
		return nil, fmt.Errorf("波段序号越界: %d", index)
	}
	return ds.bands[index-1], nil
}

// Bands 全部波段。
func (ds *Dataset) Bands() []*RasterBand {
	return ds.bands
}

// RasterCount 波段数量。
func (ds *Dataset) RasterCount() int {
	return len(ds.bands)
}

// GetSRS 读取数据集投影文本并包装为新描述符。
// 数据集总是返回描述符：投影未知时返回空描述符（与几何的nil缺席语义不同）。
func (ds *Dataset) GetSRS() *SRS {
	if ds == nil || ds.projectionDef == "" {
		return newEmptySRS()
	}
	srs, err := NewSRS(ds.projectionDef)
	if err != nil {
		warnf("GetSRS", "数据集投影文本无法解析: %v", err)
		return newEmptySRS()
	}
	return srs
}

// assignSRS 把描述符的WKT形式写入数据集。
// GeoPackage承载的数据集先写回文件，失败时告警且数据集保持不变（非致命）。
func (ds *Dataset) assignSRS(s *SRS) {
	wkt := s.WKT()
	if ds.db != nil {
		if err := ds.writeProjection(wkt); err != nil {
			warnf("SetSRS", "写入数据集投影失败: %v", err)
			return
		}
	}
	ds.projectionDef = wkt
}

// Close 关闭数据集的文件后端。内存数据集无效果。
func (ds *Dataset) Close() error {
	if ds == nil || ds.db == nil {
		return nil
	}
	err := ds.db.Close()
	ds.db = nil
	return err
}

// ==================== GeoPackage 承载 ====================

const createSpatialRefSysSQL = `CREATE TABLE IF NOT EXISTS gpkg_spatial_ref_sys (
	srs_name TEXT NOT NULL,
	srs_id INTEGER PRIMARY KEY,
	organization TEXT NOT NULL,
	organization_coordsys_id INTEGER NOT NULL,
	definition TEXT NOT NULL,
	description TEXT
)`

const createContentsSQL = `CREATE TABLE IF NOT EXISTS gpkg_contents (
	table_name TEXT PRIMARY KEY,
	data_type TEXT NOT NULL,
	identifier TEXT UNIQUE,
	description TEXT DEFAULT '',
	last_change DATETIME DEFAULT CURRENT_TIMESTAMP,
	min_x DOUBLE, min_y DOUBLE, max_x DOUBLE, max_y DOUBLE,
	srs_id INTEGER,
	CONSTRAINT fk_gc_r_srs_id FOREIGN KEY (srs_id) REFERENCES gpkg_spatial_ref_sys(srs_id)
)`

// CreateGeoPackage 新建GeoPackage文件并登记一张内容表，返回其数据集。
// srs为nil或空描述符时内容表指向“未定义”参考系。
func CreateGeoPackage(path string, tableName string, srs *SRS) (*Dataset, error) {
	if tableName == "" {
		tableName = "dataset_" + strings.Split(uuid.New().String(), "-")[0]
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("打开GeoPackage失败: %v", err)
	}
	for _, stmt := range []string{createSpatialRefSysSQL, createContentsSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("创建GeoPackage表失败: %v", err)
		}
	}
	// GeoPackage规范要求的保底参考系行
	if _, err := db.Exec(`INSERT OR IGNORE INTO gpkg_spatial_ref_sys
		(srs_name, srs_id, organization, organization_coordsys_id, definition, description)
		VALUES ('Undefined cartesian SRS', -1, 'NONE', -1, 'undefined', ''),
		       ('Undefined geographic SRS', 0, 'NONE', 0, 'undefined', '')`); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化参考系表失败: %v", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO gpkg_contents (table_name, data_type, identifier, srs_id)
		VALUES (?, 'features', ?, 0)`, tableName, tableName); err != nil {
		db.Close()
		return nil, fmt.Errorf("登记内容表失败: %v", err)
	}
	ds := &Dataset{
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		db:        db,
		tableName: tableName,
	}
	if srs != nil && !srs.IsEmpty() {
		ds.assignSRS(srs)
	}
	return ds, nil
}

// OpenGeoPackageDataset 打开GeoPackage文件，按首个内容表构建数据集。
func OpenGeoPackageDataset(path string) (*Dataset, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("打开GeoPackage失败: %v", err)
	}
	row := db.QueryRow(`SELECT c.table_name, COALESCE(s.definition, '')
		FROM gpkg_contents c
		LEFT JOIN gpkg_spatial_ref_sys s ON c.srs_id = s.srs_id
		ORDER BY c.table_name LIMIT 1`)
	var table, def string
	if err := row.Scan(&table, &def); err != nil {
		db.Close()
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("GeoPackage中没有内容表: %s", path)
		}
		return nil, fmt.Errorf("读取GeoPackage内容表失败: %v", err)
	}
	if def == "undefined" || def == "Not provided" {
		def = ""
	}
	return &Dataset{
		Name:          strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		projectionDef: def,
		db:            db,
		tableName:     table,
	}, nil
}

// writeProjection 把投影文本写回GeoPackage：登记新参考系行并把内容表指向它。
func (ds *Dataset) writeProjection(def string) error {
	var next int
	if err := ds.db.QueryRow(`SELECT COALESCE(MAX(srs_id), 0) + 1 FROM gpkg_spatial_ref_sys`).Scan(&next); err != nil {
		return err
	}
	if next < 100000 {
		next = 100000 // 自定义参考系从100000起，避开EPSG编号段
	}
	if _, err := ds.db.Exec(`INSERT INTO gpkg_spatial_ref_sys
		(srs_name, srs_id, organization, organization_coordsys_id, definition, description)
		VALUES (?, ?, 'NONE', ?, ?, '')`, ds.tableName+"_srs", next, next, def); err != nil {
		return err
	}
	_, err := ds.db.Exec(`UPDATE gpkg_contents SET srs_id = ?, last_change = CURRENT_TIMESTAMP
		WHERE table_name = ?`, next, ds.tableName)
	return err
}
