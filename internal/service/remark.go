package service

// ── 评语引擎 ──
//
// 规则表驱动的绩效评语：分数百分比落入阈值区间得到类别标签，
// 再交叉比对出勤率附加至多一条建议。区间下闭、降序匹配、首中即止。

// Remark 评语结果
type Remark struct {
	Text     string `json:"text"`
	Level    string `json:"level"` // success | warning | danger
	Advisory string `json:"advisory,omitempty"`
}

// GetRemark 按成绩百分比生成类别标签
func GetRemark(markPct float64) Remark {
	switch {
	case markPct >= 90:
		return Remark{Text: "Outstanding", Level: "success"}
	case markPct >= 75:
		return Remark{Text: "Good", Level: "success"}
	case markPct >= 50:
		return Remark{Text: "Average", Level: "warning"}
	default:
		return Remark{Text: "Needs Improvement", Level: "danger"}
	}
}

// GetSmartRemark 交叉比对成绩与出勤，按固定优先级附加至多一条建议。
// 判定顺序不可调换，边界值只允许命中一条。
func GetSmartRemark(markPct, attPct float64) Remark {
	remark := GetRemark(markPct)
	switch {
	case markPct >= 75 && attPct > 0 && attPct < 80:
		remark.Advisory = "Good marks but attendance shortage - irregular student"
	case attPct >= 90 && markPct < 50:
		remark.Advisory = "Regular attendance but poor marks - needs academic support"
	case markPct < 40 && attPct > 0 && attPct < 60:
		remark.Advisory = "Critical: Both marks and attendance very low - needs intervention"
	}
	return remark
}
