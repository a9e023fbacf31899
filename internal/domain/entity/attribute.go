// Package entity 定义领域实体
package entity

// 属性取值范围
const (
	AttributeMin = 0
	AttributeMax = 100
)

// AttributeVector 五维属性向量
// 德育、智育、体育、美育、劳育，各维度取值 [0, 100]
type AttributeVector struct {
	De  int `json:"de"`
	Zhi int `json:"zhi"`
	Ti  int `json:"ti"`
	Mei int `json:"mei"`
	Lao int `json:"lao"`
}

// AttributeDelta 属性增量，缺失的维度不参与变更
type AttributeDelta struct {
	De  *int `json:"de,omitempty"`
	Zhi *int `json:"zhi,omitempty"`
	Ti  *int `json:"ti,omitempty"`
	Mei *int `json:"mei,omitempty"`
	Lao *int `json:"lao,omitempty"`
}

// AttributeNames 属性键到中文名的映射
var AttributeNames = map[string]string{
	"de":  "德育",
	"zhi": "智育",
	"ti":  "体育",
	"mei": "美育",
	"lao": "劳育",
}

// AttributeKeys 属性键的固定遍历顺序
var AttributeKeys = []string{"de", "zhi", "ti", "mei", "lao"}

// Get 按键读取维度值，未知键返回 0
func (v AttributeVector) Get(key string) int {
	switch key {
	case "de":
		return v.De
	case "zhi":
		return v.Zhi
	case "ti":
		return v.Ti
	case "mei":
		return v.Mei
	case "lao":
		return v.Lao
	}
	return 0
}

// Sum 五维属性总和
func (v AttributeVector) Sum() int {
	return v.De + v.Zhi + v.Ti + v.Mei + v.Lao
}

// ApplyDelta 应用增量并将各维度钳制到 [0, 100]
// 仅处理增量中出现的维度，返回新向量，不修改原值
func (v AttributeVector) ApplyDelta(d AttributeDelta) AttributeVector {
	out := v
	if d.De != nil {
		out.De = clampAttribute(out.De + *d.De)
	}
	if d.Zhi != nil {
		out.Zhi = clampAttribute(out.Zhi + *d.Zhi)
	}
	if d.Ti != nil {
		out.Ti = clampAttribute(out.Ti + *d.Ti)
	}
	if d.Mei != nil {
		out.Mei = clampAttribute(out.Mei + *d.Mei)
	}
	if d.Lao != nil {
		out.Lao = clampAttribute(out.Lao + *d.Lao)
	}
	return out
}

// IsZero 增量是否为空
func (d AttributeDelta) IsZero() bool {
	return d.De == nil && d.Zhi == nil && d.Ti == nil && d.Mei == nil && d.Lao == nil
}

func clampAttribute(v int) int {
	if v < AttributeMin {
		return AttributeMin
	}
	if v > AttributeMax {
		return AttributeMax
	}
	return v
}
