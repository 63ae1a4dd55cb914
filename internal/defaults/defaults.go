package defaults

// 游戏内固定域的常量表。值取自游戏 0.3.3f11 的存档格式。
// Constant tables for the game's fixed domains, as written by game build
// 0.3.3f11 save files.

// RankNames 按进阶顺序排列的段位名
// RankNames lists rank names in progression order.
var RankNames = []string{"Street", "Dealer", "Supplier", "Distributor", "Kingpin"}

// QualityNames 物品品质枚举，从低到高
// QualityNames lists item qualities from lowest to highest.
var QualityNames = []string{"Trash", "Poor", "Standard", "Premium", "Heavenly"}

// PackagingNames 包装枚举；"none" 表示不改动包装
// PackagingNames lists packaging options; "none" leaves packaging untouched.
var PackagingNames = []string{"none", "baggie", "jar"}

// ItemFilters 属性批量更新的条目过滤器
// ItemFilters are the item-kind filters for bulk property updates.
var ItemFilters = []string{"both", "weed", "item"}

// BuiltinProducts 可直接“发现”的内置产品 ID
// BuiltinProducts are the built-in product ids that can be discovered directly.
var BuiltinProducts = []string{"cocaine", "meth"}

// ProductProperties 生成产品时抽取的效果池
// ProductProperties is the effect pool sampled when generating products.
var ProductProperties = []string{
	"athletic", "balding", "gingeritis", "spicy", "jennerising",
	"thoughtprovoking", "tropicthunder", "giraffying", "longfaced",
	"sedating", "smelly", "paranoia", "laxative", "caloriedense",
	"energizing",
}

// ProductIngredients 生成混合配方时抽取的原料池
// ProductIngredients is the ingredient pool sampled for mix recipes.
var ProductIngredients = []string{
	"flumedicine", "gasoline", "mouthwash", "horsesemen", "iodine",
	"chili", "paracetamol", "energydrink", "donut", "banana", "viagra",
	"cuke", "motoroil",
}

// GameVersion 写入新生成文件的版本号
// GameVersion is stamped into newly generated files.
const GameVersion = "0.3.3f11"

// ProductManagerTemplate 返回空的 Products.json 骨架
// ProductManagerTemplate returns an empty Products.json skeleton.
func ProductManagerTemplate() map[string]any {
	return map[string]any{
		"DataType":           "ProductManagerData",
		"DataVersion":        0,
		"GameVersion":        "0.2.9f4",
		"DiscoveredProducts": []any{},
		"ListedProducts":     []any{},
		"ActiveMixOperation": map[string]any{"ProductID": "", "IngredientID": ""},
		"IsMixComplete":      false,
		"MixRecipes":         []any{},
		"ProductPrices":      []any{},
	}
}

// OwnershipTemplate 返回缺失 Property.json / Business.json 时补齐用的骨架；
// dataType 为 "PropertyData" 或 "BusinessData"。
// OwnershipTemplate returns the skeleton used to fill a missing Property.json
// or Business.json; dataType is "PropertyData" or "BusinessData".
func OwnershipTemplate(dataType, code string) map[string]any {
	return map[string]any{
		"DataType":         dataType,
		"DataVersion":      0,
		"GameVersion":      GameVersion,
		"PropertyCode":     code,
		"IsOwned":          true,
		"SwitchStates":     []any{true, true, true, true},
		"ToggleableStates": []any{true, true},
	}
}

// NPCTemplate 返回新 NPC.json 内容
// NPCTemplate returns the body of a fresh NPC.json.
func NPCTemplate(id string) map[string]any {
	return map[string]any{
		"DataType":    "NPCData",
		"DataVersion": 0,
		"GameVersion": GameVersion,
		"ID":          id,
	}
}

// RelationshipTemplate 返回解锁状态的 Relationship.json 内容
// RelationshipTemplate returns an unlocked Relationship.json body.
func RelationshipTemplate() map[string]any {
	return map[string]any{
		"DataType":      "RelationshipData",
		"DataVersion":   0,
		"GameVersion":   GameVersion,
		"RelationDelta": 999,
		"Unlocked":      true,
		"UnlockType":    1,
	}
}
