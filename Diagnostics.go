package Gosrs

import (
	"fmt"
	"log"
)

// ==================== 诊断告警 ====================

// Warning 非致命告警。坐标系关联与重投影中的策略性拒绝（图层要素禁止单独设置
// 坐标系、空目标坐标系等）不会中断调用链，统一通过该结构上报。
type Warning struct {
	Op      string // 产生告警的操作名
	Message string // 告警内容
}

// WarningHandler 告警处理函数，默认写入标准日志。测试中可替换为采集函数。
var WarningHandler = func(w Warning) {
	log.Printf("[%s] %s", w.Op, w.Message)
}

func warnf(op string, format string, args ...interface{}) {
	WarningHandler(Warning{Op: op, Message: fmt.Sprintf(format, args...)})
}
