package editor

import (
	"fmt"
	"strconv"
	"strings"

	"saveedit/internal/defaults"
)

// ValidationError 表示某个输入字段被拒绝；落盘前抛出，存档不受影响
// ValidationError rejects one input field; it is raised before anything
// touches disk, so the save stays untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const (
	// MaxMoney 余额上限（10 位）/ balances cap at ten digits
	MaxMoney = int64(9_999_999_999)
	// MaxQuantity 单格物品数量上限 / per-slot item quantity cap
	MaxQuantity = int64(1_000_000)
	// MaxRankValue 表单允许的段位/层级上限（批量解锁写 999，不走表单校验）
	// MaxRankValue caps form input for rank and tier; bulk unlock writes 999
	// and bypasses the form.
	MaxRankValue = int64(100)

	MaxProductCount = 1000
	MinIDLength     = 5
	MaxIDLength     = 20
	MaxProductPrice = int64(1_000_000)
)

// ParseAmount 把文本输入解析为非负整数
// ParseAmount parses a text input into a non-negative integer.
func ParseAmount(field, input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, &ValidationError{Field: field, Reason: "value is empty"}
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "not a whole number"}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return n, nil
}

// MoneyAmount 校验余额字段 / MoneyAmount validates one balance field.
func MoneyAmount(field string, v int64) error {
	if v < 0 || v > MaxMoney {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be between 0 and %d", MaxMoney)}
	}
	return nil
}

// RankValue 校验段位编号或层级 / RankValue validates a rank number or tier.
func RankValue(field string, v int64) error {
	if v < 0 || v > MaxRankValue {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be between 0 and %d", MaxRankValue)}
	}
	return nil
}

// Quantity 校验物品数量 / Quantity validates an item quantity.
func Quantity(v int64) error {
	if v < 0 || v > MaxQuantity {
		return &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be between 0 and %d", MaxQuantity)}
	}
	return nil
}

func inSet(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// RankName 校验段位名 / RankName validates a rank name.
func RankName(v string) error {
	if !inSet(v, defaults.RankNames) {
		return &ValidationError{Field: "rank", Reason: fmt.Sprintf("unknown rank %q", v)}
	}
	return nil
}

// Quality 校验品质枚举 / Quality validates the quality enum.
func Quality(v string) error {
	if !inSet(v, defaults.QualityNames) {
		return &ValidationError{Field: "quality", Reason: fmt.Sprintf("unknown quality %q", v)}
	}
	return nil
}

// Packaging 校验包装枚举 / Packaging validates the packaging enum.
func Packaging(v string) error {
	if !inSet(v, defaults.PackagingNames) {
		return &ValidationError{Field: "packaging", Reason: fmt.Sprintf("unknown packaging %q", v)}
	}
	return nil
}

// ItemFilter 校验条目过滤器 / ItemFilter validates the item-kind filter.
func ItemFilter(v string) error {
	if !inSet(v, defaults.ItemFilters) {
		return &ValidationError{Field: "filter", Reason: fmt.Sprintf("unknown filter %q", v)}
	}
	return nil
}

// OrganisationName 校验组织名 / OrganisationName validates the org name.
func OrganisationName(v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: "organisation name", Reason: "must not be empty"}
	}
	return nil
}

// ProductParams 校验产品生成参数
// ProductParams validates product generation parameters.
func ProductParams(count, idLength int, price int64) error {
	if count < 1 || count > MaxProductCount {
		return &ValidationError{Field: "product count", Reason: fmt.Sprintf("must be between 1 and %d", MaxProductCount)}
	}
	if idLength < MinIDLength || idLength > MaxIDLength {
		return &ValidationError{Field: "id length", Reason: fmt.Sprintf("must be between %d and %d", MinIDLength, MaxIDLength)}
	}
	if price < 1 || price > MaxProductPrice {
		return &ValidationError{Field: "price", Reason: fmt.Sprintf("must be between 1 and %d", MaxProductPrice)}
	}
	return nil
}
