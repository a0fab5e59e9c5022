package Gosrs

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== GeoPackage 参考系注册表 ====================

// GpkgSpatialRefSys gpkg_spatial_ref_sys 表模型
type GpkgSpatialRefSys struct {
	SrsName                string `gorm:"column:srs_name;not null"`
	// autoIncrement:false 保证srs_id=0的保底行按字面值写入，
	// 否则gorm把零值主键当作未赋值，交给sqlite自增。
	SrsID                  int    `gorm:"column:srs_id;primaryKey;autoIncrement:false"`
	Organization           string `gorm:"column:organization;not null"`
	OrganizationCoordsysID int    `gorm:"column:organization_coordsys_id;not null"`
	Definition             string `gorm:"column:definition;not null"`
	Description            string `gorm:"column:description"`
}

func (GpkgSpatialRefSys) TableName() string {
	return "gpkg_spatial_ref_sys"
}

// EnsureSpatialRefSysTable 建表并补齐GeoPackage规范要求的保底行（-1、0、4326）。
func EnsureSpatialRefSysTable(DB *gorm.DB) error {
	if err := DB.AutoMigrate(&GpkgSpatialRefSys{}); err != nil {
		return fmt.Errorf("迁移gpkg_spatial_ref_sys失败: %v", err)
	}
	wgs84, err := NewSRS()
	if err != nil {
		return err
	}
	defaults := []GpkgSpatialRefSys{
		{SrsName: "Undefined cartesian SRS", SrsID: -1, Organization: "NONE", OrganizationCoordsysID: -1, Definition: "undefined"},
		{SrsName: "Undefined geographic SRS", SrsID: 0, Organization: "NONE", OrganizationCoordsysID: 0, Definition: "undefined"},
		{SrsName: "WGS 84", SrsID: 4326, Organization: "EPSG", OrganizationCoordsysID: 4326, Definition: wgs84.WKT()},
	}
	for _, row := range defaults {
		if err := DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("写入保底参考系行失败: %v", err)
		}
	}
	return nil
}

// RegisterSRS 把描述符登记到参考系表。已存在的srs_id会被覆盖。
// 定义按WKT形式存储（GeoPackage惯例），空描述符不可登记。
func RegisterSRS(DB *gorm.DB, srs *SRS, srsID int, name string) error {
	if srs == nil || srs.IsEmpty() {
		return errors.New("空描述符不可登记")
	}
	def := srs.WKT()
	if def == "" {
		def = srs.Proj4()
	}
	if name == "" {
		name = fmt.Sprintf("srs_%d", srsID)
	}
	row := GpkgSpatialRefSys{
		SrsName:                name,
		SrsID:                  srsID,
		Organization:           "NONE",
		OrganizationCoordsysID: srsID,
		Definition:             def,
	}
	if err := DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("登记参考系失败: %v", err)
	}
	return nil
}

// LookupSRS 按srs_id查出定义并重建描述符。
// “未定义”行（-1、0）返回空描述符而不是错误。
func LookupSRS(DB *gorm.DB, srsID int) (*SRS, error) {
	var row GpkgSpatialRefSys
	if err := DB.Where("srs_id = ?", srsID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("查询参考系 %d 失败: %v", srsID, err)
	}
	if row.Definition == "" || row.Definition == "undefined" || row.Definition == "Not provided" {
		return newEmptySRS(), nil
	}
	return NewSRS(row.Definition)
}
