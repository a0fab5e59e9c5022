package Gosrs

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRegistryDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.gpkg")
	DB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开数据库失败: %v", err)
	}
	if err := EnsureSpatialRefSysTable(DB); err != nil {
		t.Fatalf("EnsureSpatialRefSysTable: %v", err)
	}
	return DB
}

func TestEnsureSpatialRefSysTable(t *testing.T) {
	DB := openRegistryDB(t)

	// 保底行：-1、0、4326
	var ids []int
	if err := DB.Model(&GpkgSpatialRefSys{}).Order("srs_id").Pluck("srs_id", &ids).Error; err != nil {
		t.Fatalf("Pluck: %v", err)
	}
	// 零值srs_id必须按字面值落库，不能被当作自增主键
	want := []int{-1, 0, 4326}
	if len(ids) != len(want) {
		t.Fatalf("保底行数不对: %v", ids)
	}
	for i, id := range ids {
		if id != want[i] {
			t.Fatalf("保底srs_id不对: %v", ids)
		}
	}

	var count int64

	// 重复初始化不重复插行
	if err := EnsureSpatialRefSysTable(DB); err != nil {
		t.Fatalf("重复初始化: %v", err)
	}
	DB.Model(&GpkgSpatialRefSys{}).Count(&count)
	if count != 3 {
		t.Errorf("重复初始化后行数变了: %d", count)
	}
}

func TestLookupSRSDefaults(t *testing.T) {
	DB := openRegistryDB(t)

	s, err := LookupSRS(DB, 4326)
	if err != nil {
		t.Fatalf("LookupSRS(4326): %v", err)
	}
	if !s.IsGeographic() {
		t.Error("4326应是地理坐标系")
	}

	// “未定义”行读出空描述符
	for _, id := range []int{-1, 0} {
		s, err := LookupSRS(DB, id)
		if err != nil {
			t.Fatalf("LookupSRS(%d): %v", id, err)
		}
		if !s.IsEmpty() {
			t.Errorf("srs_id=%d 应是空描述符", id)
		}
	}

	if _, err := LookupSRS(DB, 99999); err == nil {
		t.Error("不存在的srs_id应报错")
	}
}

func TestRegisterAndLookup(t *testing.T) {
	DB := openRegistryDB(t)

	merc := mustSRS(t, "EPSG:3857")
	if err := RegisterSRS(DB, merc, 3857, "WGS 84 / Pseudo-Mercator"); err != nil {
		t.Fatalf("RegisterSRS: %v", err)
	}

	got, err := LookupSRS(DB, 3857)
	if err != nil {
		t.Fatalf("LookupSRS: %v", err)
	}
	if got.IsEmpty() || got.IsGeographic() {
		t.Errorf("查回的描述符不对: %q", got.Proj4())
	}

	// 覆盖登记同一srs_id
	wgs84 := mustSRS(t, "WGS84")
	if err := RegisterSRS(DB, wgs84, 3857, "overwritten"); err != nil {
		t.Fatalf("覆盖登记: %v", err)
	}
	got2, err := LookupSRS(DB, 3857)
	if err != nil {
		t.Fatalf("LookupSRS: %v", err)
	}
	if !got2.IsGeographic() {
		t.Error("覆盖登记后应查回新定义")
	}

	// 空描述符不可登记
	if err := RegisterSRS(DB, newEmptySRS(), 100001, ""); err == nil {
		t.Error("空描述符登记应报错")
	}
}
