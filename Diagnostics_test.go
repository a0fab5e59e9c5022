package Gosrs

import (
	"testing"
)

// captureWarnings 替换告警处理函数，采集测试期间产生的告警。
func captureWarnings(t *testing.T) *[]Warning {
	t.Helper()
	old := WarningHandler
	var ws []Warning
	WarningHandler = func(w Warning) { ws = append(ws, w) }
	t.Cleanup(func() { WarningHandler = old })
	return &ws
}

func TestWarnfRouting(t *testing.T) {
	ws := captureWarnings(t)
	warnf("TestOp", "告警 %d", 7)
	if len(*ws) != 1 {
		t.Fatalf("期望1条告警，得到%d", len(*ws))
	}
	if (*ws)[0].Op != "TestOp" || (*ws)[0].Message != "告警 7" {
		t.Errorf("告警内容不对: %+v", (*ws)[0])
	}
}
